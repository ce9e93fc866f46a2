package screen

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func twoRowImage(top, bottom color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for x := range 2 {
		img.SetRGBA(x, 0, top)
		img.SetRGBA(x, 1, bottom)
	}
	return img
}

func TestRenderHalfBlockPacksTwoRows(t *testing.T) {
	r := NewRenderer(ModeTrue)
	img := twoRowImage(color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255})

	got := r.Render(img, 2, 1)
	want := "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m▀▀" + ansiReset
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderASCIIUsesBrightnessRamp(t *testing.T) {
	r := NewRenderer(ModeOff)
	img := twoRowImage(color.RGBA{R: 255, G: 255, B: 255, A: 255}, color.RGBA{A: 255})

	got := r.Render(img, 2, 2)
	if got != "@@\n  " {
		t.Fatalf("expected %q, got %q", "@@\n  ", got)
	}
	if r.PixelRows(5) != 5 {
		t.Fatalf("expected ascii mode to use one pixel row per line, got %d", r.PixelRows(5))
	}
}

func TestRenderRowCount(t *testing.T) {
	r := NewRenderer(Mode256)
	img := image.NewRGBA(image.Rect(0, 0, 10, 8))
	out := r.Render(img, 10, 4)
	if lines := strings.Count(out, "\n") + 1; lines != 4 {
		t.Fatalf("expected 4 lines, got %d", lines)
	}
	if r.PixelRows(4) != 8 {
		t.Fatalf("expected 8 pixel rows, got %d", r.PixelRows(4))
	}
	if r.Render(img, 0, 4) != "" {
		t.Fatal("expected empty output for zero columns")
	}
}

func TestNearest16MatchesPaletteEntries(t *testing.T) {
	if got := fgSeq(Mode16, 205, 49, 49); got != "\x1b[31m" {
		t.Fatalf("expected red foreground, got %q", got)
	}
	if got := bgSeq(Mode16, 255, 255, 255); got != "\x1b[107m" {
		t.Fatalf("expected bright white background, got %q", got)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": ModeAuto, "ascii": ModeOff, "256": Mode256, "TrueColor": ModeTrue, "16": Mode16} {
		got, err := ParseMode(in)
		if err != nil {
			t.Fatalf("ParseMode(%q) returned error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseMode(%q): expected %v, got %v", in, want, got)
		}
	}
	if _, err := ParseMode("sepia"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
