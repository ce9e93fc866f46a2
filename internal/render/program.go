// Package render draws spectrum frames and waterfall history into RGBA
// framebuffers. Textures and pixel stages run on the CPU; the framebuffers
// are handed to the screen package for presentation.
package render

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/olivier-w/spectra/internal/colormap"
)

// ErrInitialization marks a resource that could not be created. It is fatal
// to the renderer that hit it and is never retried.
var ErrInitialization = errors.New("render initialization failed")

// Stage names a pixel stage a Program can be compiled for.
type Stage uint8

const (
	// StageLine shades line-strip fragments by their amplitude.
	StageLine Stage = iota + 1
	// StageSpectrogram shades texels of a single-channel surface.
	StageSpectrogram
)

func (s Stage) String() string {
	switch s {
	case StageLine:
		return "line"
	case StageSpectrogram:
		return "spectrogram"
	default:
		return fmt.Sprintf("stage(%d)", uint8(s))
	}
}

// Program is a compiled pixel stage. Both renderers shade through a Program
// so the color map is defined once and selected at draw time.
type Program struct {
	stage Stage
	luts  map[colormap.Variant]*[256]color.RGBA
}

// Compile prepares the pixel stage for s.
func Compile(s Stage) (*Program, error) {
	if s != StageLine && s != StageSpectrogram {
		return nil, fmt.Errorf("%w: compiling %v: unknown stage", ErrInitialization, s)
	}
	p := &Program{stage: s, luts: make(map[colormap.Variant]*[256]color.RGBA, len(colormap.Variants))}
	for _, v := range colormap.Variants {
		lut := colormap.LUT(v)
		p.luts[v] = &lut
	}
	return p, nil
}

// Stage returns the stage p was compiled for.
func (p *Program) Stage() Stage { return p.stage }

// Shade colors a continuous value t in [0,1].
func (p *Program) Shade(t float64, v colormap.Variant) color.RGBA {
	return colormap.Of(t, v).RGBA8()
}

// ShadeByte colors a quantized texel.
func (p *Program) ShadeByte(b uint8, v colormap.Variant) color.RGBA {
	lut, ok := p.luts[v]
	if !ok {
		lut = p.luts[colormap.Perceptual]
	}
	return lut[b]
}
