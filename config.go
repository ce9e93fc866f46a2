package main

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/olivier-w/spectra/internal/audio"
	"github.com/olivier-w/spectra/internal/colormap"
	"github.com/olivier-w/spectra/internal/render"
	"github.com/olivier-w/spectra/internal/screen"
	"github.com/olivier-w/spectra/internal/spectrum"
	"github.com/olivier-w/spectra/internal/ui"
	"github.com/olivier-w/spectra/internal/visualizer"
	"github.com/olivier-w/spectra/internal/waterfall"
)

// config holds the raw command line values. validate resolves the named
// options into their typed forms.
type config struct {
	// source is mic, file or tone
	source string
	// file is the audio file for the file source
	file string
	// sampleRate applies to mic and tone
	sampleRate int
	// framesPerBuffer is the microphone read size
	framesPerBuffer int
	// play also sends a file to the output device
	play     bool
	toneFreq float64
	sweep    bool

	binCount  int
	colorMap  string
	min       float64
	max       float64
	layout    string
	smoother  string
	smoothing float64
	history   int
	filter    string
	color     string
	fps       int

	logPath  string
	logLevel string

	// resolved by validate
	kind     audio.Kind
	variant  colormap.Variant
	rng      spectrum.Range
	view     visualizer.Layout
	smooth   spectrum.Smoother
	sampling render.Filter
	mode     screen.Mode
}

// newZeroConfig returns the defaults a bare `spectra` starts with.
func newZeroConfig() config {
	return config{
		sampleRate:      audio.DefaultSampleRate,
		framesPerBuffer: audio.DefaultFramesPerBuffer,
		toneFreq:        audio.DefaultToneFreq,
		binCount:        spectrum.DefaultBinCount,
		colorMap:        colormap.Perceptual.String(),
		min:             spectrum.DefaultRange.Min,
		max:             spectrum.DefaultRange.Max,
		layout:          visualizer.Split.String(),
		smoother:        "exp",
		smoothing:       spectrum.DefaultTimeConstant,
		history:         waterfall.DefaultHeight,
		filter:          render.Linear.String(),
		color:           screen.ModeAuto.String(),
		fps:             ui.DefaultFPS,
		logLevel:        "info",
	}
}

// validate checks the values and fills in the resolved fields.
func (cfg *config) validate() error {
	if cfg.file != "" && cfg.source == "" {
		cfg.source = string(audio.KindFile)
	}
	kind, err := audio.ParseKind(cfg.source)
	if err != nil {
		return err
	}
	cfg.kind = kind
	if kind == audio.KindFile {
		if cfg.file == "" {
			return errors.New("the file source needs --file")
		}
		if ext := filepath.Ext(cfg.file); !audio.IsSupportedExt(ext) {
			return errors.Errorf("unsupported format %q (supported: %s)", ext, audio.SupportedExtsList())
		}
	}
	if cfg.play && kind != audio.KindFile {
		return errors.New("--play only applies to the file source")
	}

	switch {
	case cfg.sampleRate < 1000:
		return errors.Errorf("sample rate %d too low (1000+ required)", cfg.sampleRate)
	case cfg.framesPerBuffer < 64:
		return errors.Errorf("frames per buffer %d too small (64+ required)", cfg.framesPerBuffer)
	case cfg.toneFreq <= 0:
		return errors.New("tone frequency must be positive")
	case cfg.fps < 1 || cfg.fps > 240:
		return errors.Errorf("fps %d outside 1..240", cfg.fps)
	case cfg.history < 1 || cfg.history > render.MaxTextureSize:
		return errors.Errorf("history %d outside 1..%d", cfg.history, render.MaxTextureSize)
	case cfg.smoothing < 0 || cfg.smoothing >= 1:
		return errors.Errorf("smoothing %v outside [0, 1)", cfg.smoothing)
	}

	if err := spectrum.ValidateBinCount(cfg.binCount); err != nil {
		return err
	}

	cfg.rng = spectrum.Range{Min: cfg.min, Max: cfg.max}
	if err := cfg.rng.Validate(); err != nil {
		return err
	}

	if cfg.variant, err = colormap.ParseVariant(cfg.colorMap); err != nil {
		return err
	}
	if cfg.view, err = visualizer.ParseLayout(cfg.layout); err != nil {
		return err
	}
	if cfg.smooth, err = spectrum.ParseSmoother(cfg.smoother, cfg.smoothing, cfg.fps); err != nil {
		return err
	}
	if cfg.sampling, err = render.ParseFilter(cfg.filter); err != nil {
		return err
	}
	if cfg.mode, err = screen.ParseMode(cfg.color); err != nil {
		return err
	}
	return nil
}

// audioOptions describes the source to open.
func (cfg *config) audioOptions() audio.Options {
	return audio.Options{
		Kind:            cfg.kind,
		Path:            cfg.file,
		SampleRate:      cfg.sampleRate,
		FramesPerBuffer: cfg.framesPerBuffer,
		ToneFreq:        cfg.toneFreq,
		Sweep:           cfg.sweep,
		Play:            cfg.play,
	}
}

// settings is the initial state of the interactive controls.
func (cfg *config) settings() ui.Settings {
	s := ui.DefaultSettings()
	s.BinCount = cfg.binCount
	s.ColorMap = cfg.variant
	s.Range = cfg.rng
	s.Layout = cfg.view
	return s
}

func (cfg *config) scopeOptions(sampleRate int) visualizer.Options {
	return visualizer.Options{
		History:    cfg.history,
		Filter:     cfg.sampling,
		Color:      cfg.mode,
		SampleRate: sampleRate,
	}
}
