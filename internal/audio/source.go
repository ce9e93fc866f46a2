// Package audio captures or synthesizes sample streams and feeds them into a
// Tap for analysis.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrInitialization reports that capture could not start: no device, no
// permission, or an unreadable file. The visualizer keeps running without
// audio when it sees this.
var ErrInitialization = errors.New("audio initialization failed")

// DefaultSampleRate is used for the microphone and the tone generator.
const DefaultSampleRate = 44100

// Source produces samples into a Tap. Start returns once capture is running;
// samples keep flowing until ctx is cancelled or Close is called.
type Source interface {
	Name() string
	SampleRate() int
	Start(ctx context.Context, tap *Tap) error
	Close() error
}

// Kind selects a Source implementation.
type Kind string

const (
	KindMic  Kind = "mic"
	KindFile Kind = "file"
	KindTone Kind = "tone"
)

// ParseKind accepts a Kind name in any case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindMic, KindFile, KindTone:
		return k, nil
	case "":
		return KindMic, nil
	}
	return "", fmt.Errorf("unknown audio source %q (want mic, file or tone)", s)
}

// Options configures Open.
type Options struct {
	Kind       Kind
	Path       string
	SampleRate int
	// FramesPerBuffer is the microphone read size.
	FramesPerBuffer int
	ToneFreq        float64
	Sweep           bool
	// Play sends a file source to the default output device as well.
	Play bool
}

// Open builds the source described by opts. Device errors surface from
// Start, not here.
func Open(opts Options, log *zap.Logger) (Source, error) {
	if log == nil {
		log = zap.NewNop()
	}
	rate := opts.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	switch opts.Kind {
	case KindMic, "":
		return NewMic(rate, opts.FramesPerBuffer, log), nil
	case KindFile:
		f, err := OpenFile(opts.Path, opts.Play, log)
		if err != nil {
			return nil, err
		}
		return f, nil
	case KindTone:
		return NewTone(rate, opts.ToneFreq, opts.Sweep), nil
	}
	return nil, fmt.Errorf("unknown audio source %q", opts.Kind)
}

// pumpInterval is how often paced sources top up the tap.
const pumpInterval = 10 * time.Millisecond

// pump writes rate samples per second from next into tap until ctx is done
// or next fails. Samples owed for the elapsed wall time are produced in
// chunks, so a late tick catches up instead of drifting.
func pump(ctx context.Context, tap *Tap, rate int, next func(dst []float64) (int, error)) error {
	ticker := time.NewTicker(pumpInterval)
	defer ticker.Stop()

	buf := make([]float64, rate/20+1)
	start := time.Now()
	written := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			due := int(now.Sub(start).Seconds()*float64(rate)) - written
			for due > 0 {
				got, err := next(buf[:min(due, len(buf))])
				tap.Write(buf[:got])
				written += got
				due -= got
				if err != nil {
					return err
				}
				if got == 0 {
					break
				}
			}
		}
	}
}

// finished reports whether err from pump is a normal end of stream.
func finished(err error) bool {
	return err == nil || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled)
}
