// Package spectrum defines spectrum frames, the normalization range that maps
// them to display space, and the analyser that produces them from audio.
package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned when a normalization range is degenerate.
var ErrInvalidRange = errors.New("invalid normalization range")

// Frame holds one magnitude value (dB) per frequency bin. Frames returned by
// a Source are only valid until the next call to Frame.
type Frame []float64

// WheelStep is how far one scroll-wheel tick moves a range bound.
const WheelStep = 0.5

// Bound selects one end of a Range.
type Bound uint8

const (
	BoundMin Bound = iota
	BoundMax
)

func (b Bound) String() string {
	if b == BoundMax {
		return "max"
	}
	return "min"
}

// Range is the (Min, Max) pair mapping raw magnitudes to display space.
type Range struct {
	Min float64
	Max float64
}

// DefaultRange covers the usual analyser output in dB.
var DefaultRange = Range{Min: -100, Max: 0}

// Validate reports whether r can be used as an affine mapping.
func (r Range) Validate() error {
	if !finite(r.Min) || !finite(r.Max) {
		return fmt.Errorf("%w: bounds must be finite (min=%v max=%v)", ErrInvalidRange, r.Min, r.Max)
	}
	if r.Min >= r.Max {
		return fmt.Errorf("%w: min %.1f must be below max %.1f", ErrInvalidRange, r.Min, r.Max)
	}
	return nil
}

// Map sends x from [Min, Max] to [lo, hi] without clamping.
func (r Range) Map(x, lo, hi float64) float64 {
	return (x-r.Min)*(hi-lo)/(r.Max-r.Min) + lo
}

// Normalize maps x to [0,1] without clamping.
func (r Range) Normalize(x float64) float64 {
	return r.Map(x, 0, 1)
}

// Quantize maps x to a byte. The mapped value is floored and then clamped,
// so values outside the range saturate at 0 or 255.
func (r Range) Quantize(x float64) uint8 {
	v := math.Floor(r.Map(x, 0, 255))
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}

// Get returns the value of bound b.
func (r Range) Get(b Bound) float64 {
	if b == BoundMax {
		return r.Max
	}
	return r.Min
}

// With returns r with bound b replaced by v.
func (r Range) With(b Bound, v float64) Range {
	if b == BoundMax {
		r.Max = v
	} else {
		r.Min = v
	}
	return r
}

// Nudge moves bound b by one wheel step in the direction of delta. Only the
// sign of delta matters; a zero delta leaves r unchanged.
func (r Range) Nudge(b Bound, delta float64) Range {
	var step float64
	switch {
	case delta > 0:
		step = WheelStep
	case delta < 0:
		step = -WheelStep
	default:
		return r
	}
	return r.With(b, r.Get(b)+step)
}

func (r Range) String() string {
	return fmt.Sprintf("[%.1f, %.1f]", r.Min, r.Max)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
