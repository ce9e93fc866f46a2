package main

import (
	"errors"
	"testing"

	"github.com/olivier-w/spectra/internal/audio"
	"github.com/olivier-w/spectra/internal/colormap"
	"github.com/olivier-w/spectra/internal/spectrum"
	"github.com/olivier-w/spectra/internal/visualizer"
)

func TestZeroConfigValidates(t *testing.T) {
	cfg := newZeroConfig()
	if err := cfg.validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.kind != audio.KindMic {
		t.Fatalf("expected mic source, got %q", cfg.kind)
	}
	if cfg.rng != spectrum.DefaultRange {
		t.Fatalf("expected default range, got %v", cfg.rng)
	}
	s := cfg.settings()
	if s.BinCount != spectrum.DefaultBinCount || s.ColorMap != colormap.Perceptual || s.Layout != visualizer.Split {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestFileImpliesFileSource(t *testing.T) {
	cfg := newZeroConfig()
	cfg.file = "song.FLAC"
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if cfg.kind != audio.KindFile {
		t.Fatalf("expected file source, got %q", cfg.kind)
	}
	if got := sourceLabel(&cfg); got != "song.FLAC" {
		t.Fatalf("expected file name label, got %q", got)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name string
		edit func(*config)
	}{
		{"file source without file", func(c *config) { c.source = "file" }},
		{"unsupported format", func(c *config) { c.file = "clip.aac" }},
		{"play without file", func(c *config) { c.play = true }},
		{"unknown source", func(c *config) { c.source = "radio" }},
		{"bins not power of two", func(c *config) { c.binCount = 1000 }},
		{"inverted range", func(c *config) { c.min, c.max = 0, -100 }},
		{"smoothing", func(c *config) { c.smoothing = 1 }},
		{"fps", func(c *config) { c.fps = 0 }},
		{"history", func(c *config) { c.history = 0 }},
		{"colormap", func(c *config) { c.colorMap = "rainbow" }},
		{"layout", func(c *config) { c.layout = "grid" }},
		{"smoother", func(c *config) { c.smoother = "kalman" }},
		{"filter", func(c *config) { c.filter = "cubic" }},
		{"color", func(c *config) { c.color = "cga" }},
	}
	for _, tc := range cases {
		cfg := newZeroConfig()
		tc.edit(&cfg)
		if err := cfg.validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}
}

func TestValidateKeepsSentinels(t *testing.T) {
	cfg := newZeroConfig()
	cfg.binCount = 16
	if err := cfg.validate(); !errors.Is(err, spectrum.ErrBinCount) {
		t.Fatalf("expected ErrBinCount, got %v", err)
	}

	cfg = newZeroConfig()
	cfg.min = cfg.max
	if err := cfg.validate(); !errors.Is(err, spectrum.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
