// Package visualizer runs the per-frame pipeline: it pushes each spectrum
// frame into the waterfall history, draws the spectrogram and the line plot,
// and composes them with axes into terminal text.
package visualizer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/olivier-w/spectra/internal/axes"
	"github.com/olivier-w/spectra/internal/colormap"
	"github.com/olivier-w/spectra/internal/render"
	"github.com/olivier-w/spectra/internal/screen"
	"github.com/olivier-w/spectra/internal/spectrum"
	"github.com/olivier-w/spectra/internal/waterfall"
)

// FrameConfig is the settings snapshot one frame is drawn with.
type FrameConfig struct {
	BinCount int
	ColorMap colormap.Variant
	Range    spectrum.Range
}

// DefaultFrameConfig is what a fresh session starts with.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		BinCount: spectrum.DefaultBinCount,
		ColorMap: colormap.Perceptual,
		Range:    spectrum.DefaultRange,
	}
}

// Options tune a Scope.
type Options struct {
	// History is the number of waterfall rows kept.
	History int
	Filter  render.Filter
	Color   screen.Mode
	// SampleRate labels the frequency axis in Hz; zero labels it in bins.
	SampleRate int
}

var axisStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})

// Scope owns the waterfall buffer, both renderers and their framebuffers.
// It is not safe for concurrent use; the frame loop is its only caller.
type Scope struct {
	log *zap.Logger

	buf  *waterfall.Buffer
	spec *render.SpectrogramRenderer
	line *render.LineRenderer
	term *screen.Renderer

	lineCanvas *render.Canvas
	fallCanvas *render.Canvas

	binCount   int
	sampleRate int
	lastRange  spectrum.Range
	view       string
}

// NewScope allocates the pipeline for binCount. Renderer failures are
// reported as render.ErrInitialization.
func NewScope(binCount int, opts Options, log *zap.Logger) (*Scope, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := spectrum.ValidateBinCount(binCount); err != nil {
		return nil, err
	}
	history := opts.History
	if history <= 0 {
		history = waterfall.DefaultHeight
	}

	width := binCount / 2
	buf, err := waterfall.New(width, history)
	if err != nil {
		return nil, err
	}
	spec, err := render.NewSpectrogramRenderer(width, history)
	if err != nil {
		return nil, err
	}
	spec.Filter = opts.Filter
	line, err := render.NewLineRenderer()
	if err != nil {
		return nil, err
	}

	return &Scope{
		log:        log,
		buf:        buf,
		spec:       spec,
		line:       line,
		term:       screen.NewRenderer(opts.Color),
		lineCanvas: render.NewCanvas(0, 0),
		fallCanvas: render.NewCanvas(0, 0),
		binCount:   binCount,
		sampleRate: opts.SampleRate,
		lastRange:  spectrum.DefaultRange,
	}, nil
}

// BinCount returns the FFT size the buffers are sized for.
func (s *Scope) BinCount() int { return s.binCount }

// SetSampleRate relabels the frequency axis.
func (s *Scope) SetSampleRate(rate int) { s.sampleRate = rate }

// Buffer exposes the waterfall history.
func (s *Scope) Buffer() *waterfall.Buffer { return s.buf }

// View returns the text composed by the last Render.
func (s *Scope) View() string { return s.view }

// resize reallocates the buffer and the surface together, before anything
// of the frame is drawn.
func (s *Scope) resize(binCount int) error {
	if err := spectrum.ValidateBinCount(binCount); err != nil {
		return err
	}
	width := binCount / 2
	if err := s.spec.Resize(width); err != nil {
		return err
	}
	if err := s.buf.Resize(width); err != nil {
		return err
	}
	s.log.Debug("waterfall resized", zap.Int("bin_count", binCount), zap.Int("width", width))
	s.binCount = binCount
	return nil
}

// Render draws one frame into a width×height block of text. A frame that
// does not match the buffer or a degenerate range is reported and skipped
// for the history; the rest of the frame is still drawn with the last good
// state.
func (s *Scope) Render(frame spectrum.Frame, cfg FrameConfig, layout Layout, width, height int) error {
	var errs error
	if cfg.BinCount != s.binCount {
		if err := s.resize(cfg.BinCount); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("resizing to %d bins: %w", cfg.BinCount, err))
		}
	}

	if err := s.buf.Update(frame, cfg.Range); err != nil {
		s.log.Warn("frame rejected", zap.Error(err), zap.Int("frame_len", len(frame)), zap.Int("width", s.buf.Width()))
		errs = multierr.Append(errs, err)
	} else {
		s.lastRange = cfg.Range
	}
	if err := s.spec.Upload(s.buf); err != nil {
		errs = multierr.Append(errs, err)
	}

	s.view = s.compose(frame, cfg.ColorMap, layout, width, height)
	return errs
}

func (s *Scope) compose(frame spectrum.Frame, v colormap.Variant, layout Layout, width, height int) string {
	rng := s.lastRange
	yw := axes.Width(rng.Min, rng.Max, axes.DefaultTicks)
	cols := width - yw
	if cols < 4 || height < 4 {
		return ""
	}

	avail := height - 2
	var lineRows, fallRows int
	switch layout {
	case WaterfallOnly:
		fallRows = avail
	case SpectrumOnly:
		lineRows = avail
	default:
		lineRows = avail / 2
		fallRows = avail - lineRows
	}

	parts := make([]string, 0, 3)
	if lineRows > 0 {
		s.lineCanvas.Resize(cols, s.term.PixelRows(lineRows))
		s.line.Draw(s.lineCanvas, frame, rng, v)
		plot := s.term.Render(s.lineCanvas.Image(), cols, lineRows)
		yaxis := axisStyle.Render(axes.Y(lineRows, rng.Min, rng.Max, axes.DefaultTicks))
		parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, yaxis, plot))
	}
	parts = append(parts, s.frequencyAxis(yw, cols))
	if fallRows > 0 {
		s.fallCanvas.Resize(cols, s.term.PixelRows(fallRows))
		s.spec.Draw(s.fallCanvas, v)
		plot := s.term.Render(s.fallCanvas.Image(), cols, fallRows)
		parts = append(parts, indent(plot, yw))
	}
	return strings.Join(parts, "\n")
}

func (s *Scope) frequencyAxis(indentBy, cols int) string {
	hi, units := float64(s.buf.Width()), ""
	if s.sampleRate > 0 {
		hi, units = float64(s.sampleRate)/2, "Hz"
	}
	return indent(axisStyle.Render(axes.X(cols, 0, hi, axes.DefaultTicks, units)), indentBy)
}

func indent(block string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	return strings.Join(lines, "\n")
}
