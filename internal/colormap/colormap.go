// Package colormap maps normalized magnitudes to colors.
package colormap

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// Variant selects a color map.
type Variant uint8

const (
	// Perceptual is a polynomial fit of viridis (blue → green → yellow).
	Perceptual Variant = iota
	// Jet is the classic blue → cyan → yellow → red map.
	Jet
)

// Variants lists every selectable color map in cycling order.
var Variants = []Variant{Perceptual, Jet}

// RGB is a color with components in [0,1].
type RGB struct {
	R, G, B float64
}

// RGBA8 converts c to an opaque 8-bit color.
func (c RGB) RGBA8() color.RGBA {
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: 0xff}
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func (v Variant) String() string {
	switch v {
	case Perceptual:
		return "perceptual"
	case Jet:
		return "jet"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// Valid reports whether v names a known color map.
func (v Variant) Valid() bool {
	return v == Perceptual || v == Jet
}

// Next returns the color map after v, wrapping around.
func (v Variant) Next() Variant {
	return Variants[(int(v)+1)%len(Variants)]
}

// ParseVariant accepts a color map name or its numeric selector.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "perceptual", "viridis", "0":
		return Perceptual, nil
	case "jet", "1":
		return Jet, nil
	}
	return 0, fmt.Errorf("unknown color map %q (want perceptual or jet)", s)
}

// Of returns the color for t under variant v. t is clamped to [0,1] and so
// is every returned component.
func Of(t float64, v Variant) RGB {
	if math.IsNaN(t) {
		t = 0
	}
	t = clamp01(t)
	if v == Jet {
		return jet(t)
	}
	return viridis(t)
}

// viridis evaluates the degree-5 fit used by the pixel stages.
func viridis(x float64) RGB {
	x2 := x * x
	x3 := x2 * x
	x4 := x3 * x
	x5 := x4 * x

	r := 0.280268003 - 0.143510503*x + 2.225793877*x2 - 14.815088879*x3 +
		25.212752309*x4 - 11.772589584*x5
	g := -0.002117546 + 1.617109353*x - 1.909305070*x2 + 2.701152864*x3 -
		1.685288385*x4 + 0.178738871*x5
	b := 0.300805501 + 2.614650302*x - 12.019139090*x2 + 28.933559110*x3 -
		33.491294770*x4 + 13.762053843*x5

	return RGB{R: clamp01(r), G: clamp01(g), B: clamp01(b)}
}

func jet(t float64) RGB {
	return RGB{
		R: clamp01(1.5 - math.Abs(4*t-3)),
		G: clamp01(1.5 - math.Abs(4*t-2)),
		B: clamp01(1.5 - math.Abs(4*t-1)),
	}
}

// LUT returns the 8-bit colors for every quantized sample 0..255.
func LUT(v Variant) [256]color.RGBA {
	var lut [256]color.RGBA
	for i := range lut {
		lut[i] = Of(float64(i)/255, v).RGBA8()
	}
	return lut
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
