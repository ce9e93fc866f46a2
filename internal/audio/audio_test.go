package audio

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"go.uber.org/zap"
)

func writeWAV(t *testing.T, path string, rate int, frames [][2]int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 2, 1)
	data := make([]int, 0, len(frames)*2)
	for _, fr := range frames {
		data = append(data, fr[0], fr[1])
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 2, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
}

func TestFileDecodesWAVToMono(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Test Signal.wav")
	frames := make([][2]int, 100)
	for i := range frames {
		frames[i] = [2]int{16384, 0}
	}
	writeWAV(t, path, 22050, frames)

	src, err := OpenFile(path, false, zap.NewNop())
	if err != nil {
		t.Fatalf("OpenFile returned error: %v", err)
	}
	defer src.Close()

	if src.SampleRate() != 22050 {
		t.Fatalf("expected sample rate 22050, got %d", src.SampleRate())
	}
	if src.Name() != "Test Signal" {
		t.Fatalf("expected name from file name, got %q", src.Name())
	}

	dst := make([]float64, 150)
	n, err := src.mono.Read(dst)
	if n != 100 {
		t.Fatalf("expected 100 mono samples, got %d (err %v)", n, err)
	}
	for i, v := range dst[:n] {
		if math.Abs(v-0.25) > 1e-9 {
			t.Fatalf("sample %d: expected 0.25, got %v", i, v)
		}
	}
	if _, err := src.mono.Read(dst); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF after the last sample, got %v", err)
	}
}

func TestOpenFileRejectsUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := OpenFile(path, false, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("expected unsupported format error, got %v", err)
	}
}

func TestOpenFileMissing(t *testing.T) {
	if _, err := OpenFile(filepath.Join(t.TempDir(), "missing.mp3"), false, zap.NewNop()); err == nil {
		t.Fatal("expected error for a missing file")
	}
}

func TestSupportedExts(t *testing.T) {
	for _, ext := range []string{".mp3", ".WAV", ".flac", ".ogg"} {
		if !IsSupportedExt(ext) {
			t.Fatalf("expected %s to be supported", ext)
		}
	}
	if IsSupportedExt(".m4a") {
		t.Fatal("expected .m4a to be unsupported")
	}
	if got := SupportedExtsList(); got != ".flac, .mp3, .ogg, .wav" {
		t.Fatalf("expected sorted list, got %q", got)
	}
}

func TestReadMetadataFallsBackToFileName(t *testing.T) {
	m := ReadMetadata("/music/Artist - Song.mp3")
	if m.Title != "Artist - Song" {
		t.Fatalf("expected title from file name, got %q", m.Title)
	}
	if got := (Metadata{Title: "Song", Artist: "Band"}).Display(); got != "Band - Song" {
		t.Fatalf("expected %q, got %q", "Band - Song", got)
	}
}

func TestToneSettlesToAmplitude(t *testing.T) {
	tone := NewTone(8000, 1000, false)
	buf := make([]float64, 8000)
	tone.Read(buf)

	peak := 0.0
	for _, v := range buf[4000:] {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak < 0.45 || peak > 0.5+1e-6 {
		t.Fatalf("expected peak near 0.5, got %v", peak)
	}
}

func TestToneSweepRisesThenRestarts(t *testing.T) {
	tone := NewTone(44100, 0, true)
	if f := tone.Frequency(0); f != sweepLow {
		t.Fatalf("expected sweep to start at %v, got %v", sweepLow, f)
	}
	mid := tone.Frequency(44100 * 5)
	if mid <= sweepLow || mid >= 44100/2.2 {
		t.Fatalf("expected mid-sweep frequency between bounds, got %v", mid)
	}
	if f := tone.Frequency(44100 * 10); math.Abs(f-sweepLow) > 1e-9 {
		t.Fatalf("expected sweep to restart, got %v", f)
	}
	if tone.Name() != "sweep" {
		t.Fatalf("expected name sweep, got %q", tone.Name())
	}
}

func TestToneStartFeedsTap(t *testing.T) {
	src, err := Open(Options{Kind: KindTone, SampleRate: 8000}, nil)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	tap := NewTap(DefaultTapSize)
	if err := src.Start(context.Background(), tap); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := src.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if tap.Len() == 0 {
		t.Fatal("expected samples in the tap")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindMic, "MIC": KindMic, "file": KindFile, "tone": KindTone} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseKind(%q): expected %q, got %q (%v)", in, want, got, err)
		}
	}
	if _, err := ParseKind("line-in"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestSilenceNeverFails(t *testing.T) {
	var src Source = Silence{Rate: 48000}
	if err := src.Start(context.Background(), NewTap(4)); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if src.SampleRate() != 48000 {
		t.Fatalf("expected 48000, got %d", src.SampleRate())
	}
}
