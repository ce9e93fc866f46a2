package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olivier-w/spectra/internal/colormap"
	"github.com/olivier-w/spectra/internal/spectrum"
	"github.com/olivier-w/spectra/internal/visualizer"
)

// Settings are the user-controlled parameters. They only change between
// frames; every frame draws from a Snapshot.
type Settings struct {
	BinCount int
	ColorMap colormap.Variant
	Range    spectrum.Range
	Layout   visualizer.Layout
	// Focus is the range bound the arrow keys and the wheel adjust.
	Focus spectrum.Bound
}

// DefaultSettings mirrors visualizer.DefaultFrameConfig.
func DefaultSettings() Settings {
	cfg := visualizer.DefaultFrameConfig()
	return Settings{
		BinCount: cfg.BinCount,
		ColorMap: cfg.ColorMap,
		Range:    cfg.Range,
		Layout:   visualizer.Split,
	}
}

// Snapshot returns the frame configuration for the next frame.
func (s Settings) Snapshot() visualizer.FrameConfig {
	return visualizer.FrameConfig{BinCount: s.BinCount, ColorMap: s.ColorMap, Range: s.Range}
}

// StepBins doubles (dir > 0) or halves (dir < 0) the bin count. It reports
// false when already at the limit.
func (s *Settings) StepBins(dir int) bool {
	next := s.BinCount
	switch {
	case dir > 0:
		next *= 2
	case dir < 0:
		next /= 2
	}
	if next == s.BinCount || spectrum.ValidateBinCount(next) != nil {
		return false
	}
	s.BinCount = next
	return true
}

// Nudge moves the focused bound one wheel step in the direction of delta. A
// step that would make the range degenerate is refused and the range kept.
func (s *Settings) Nudge(delta float64) error {
	next := s.Range.Nudge(s.Focus, delta)
	if err := next.Validate(); err != nil {
		return err
	}
	s.Range = next
	return nil
}

// SetBound parses text as the new value of bound b. Unparseable or invalid
// values leave the range untouched.
func (s *Settings) SetBound(b spectrum.Bound, text string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", spectrum.ErrInvalidRange, text)
	}
	next := s.Range.With(b, v)
	if err := next.Validate(); err != nil {
		return err
	}
	s.Range = next
	return nil
}

// ToggleFocus switches the adjusted bound between min and max.
func (s *Settings) ToggleFocus() {
	if s.Focus == spectrum.BoundMin {
		s.Focus = spectrum.BoundMax
	} else {
		s.Focus = spectrum.BoundMin
	}
}
