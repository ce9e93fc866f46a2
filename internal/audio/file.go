package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// File streams a decoded audio file into the tap at real-time speed.
type File struct {
	path string
	meta Metadata
	play bool
	log  *zap.Logger

	f    *os.File
	dec  decoder
	mono *monoReader

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
	wg     sync.WaitGroup
}

// OpenFile opens and probes path. With play set, Start also sends the audio
// to the default output device.
func OpenFile(path string, play bool, log *zap.Logger) (*File, error) {
	if path == "" {
		return nil, errors.New("no file given for the file source")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	dec, err := newDecoder(path, f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "probing %s", path)
	}
	if dec.SampleRate() <= 0 {
		f.Close()
		return nil, errors.Errorf("%s: invalid sample rate %d", path, dec.SampleRate())
	}

	return &File{
		path: path,
		meta: ReadMetadata(path),
		play: play,
		log:  log,
		f:    f,
		dec:  dec,
		mono: newMonoReader(dec),
		done: make(chan struct{}),
	}, nil
}

func (s *File) Name() string          { return s.meta.Display() }
func (s *File) SampleRate() int       { return s.dec.SampleRate() }
func (s *File) Metadata() Metadata    { return s.meta }
func (s *File) Done() <-chan struct{} { return s.done }

// Err returns why streaming stopped, or nil for a clean end of file.
func (s *File) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Start begins streaming in the background.
func (s *File) Start(ctx context.Context, tap *Tap) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	if s.play {
		out, err := outputContext(s.dec.SampleRate())
		if err != nil {
			cancel()
			return fmt.Errorf("%w: audio output: %v", ErrInitialization, err)
		}
		player := out.NewPlayer(&playbackReader{mono: s.mono, tap: tap})
		player.Play()
		s.wg.Add(1)
		go s.monitor(ctx, player)
	} else {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.finish(pump(ctx, tap, s.dec.SampleRate(), s.mono.Read))
		}()
	}
	s.cancel = cancel

	s.log.Info("file source started",
		zap.String("path", s.path),
		zap.Int("sample_rate", s.dec.SampleRate()),
		zap.Int("channels", s.dec.ChannelCount()),
		zap.Bool("playback", s.play))
	return nil
}

// monitor waits for playback to drain or ctx to end.
func (s *File) monitor(ctx context.Context, player *oto.Player) {
	defer s.wg.Done()
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			player.Pause()
			s.finish(player.Close())
			return
		case <-ticker.C:
			if !player.IsPlaying() {
				err := player.Err()
				if cerr := player.Close(); err == nil {
					err = cerr
				}
				s.finish(err)
				return
			}
		}
	}
}

func (s *File) finish(err error) {
	if finished(err) {
		err = nil
	} else {
		s.log.Warn("file source stopped", zap.String("path", s.path), zap.Error(err))
	}
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	close(s.done)
}

// Close stops streaming and closes the file.
func (s *File) Close() error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
		s.wg.Wait()
	}
	return s.f.Close()
}

// playbackReader hands mono float32 PCM to the output device and copies
// every sample it hands over into the tap.
type playbackReader struct {
	mono *monoReader
	tap  *Tap
	buf  []float64
}

func (r *playbackReader) Read(p []byte) (int, error) {
	n := len(p) / 4
	if n == 0 {
		return 0, nil
	}
	if cap(r.buf) < n {
		r.buf = make([]float64, n)
	}
	got, err := r.mono.Read(r.buf[:n])
	for i, s := range r.buf[:got] {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(float32(s)))
	}
	r.tap.Write(r.buf[:got])
	if got > 0 && err == io.EOF {
		err = nil
	}
	return got * 4, err
}

var (
	otoOnce sync.Once
	otoCtx  *oto.Context
	otoErr  error
	otoRate int
)

// outputContext creates the process-wide output context. Only one may exist,
// so a later request at a different rate fails.
func outputContext(rate int) (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   rate,
			ChannelCount: 1,
			Format:       oto.FormatFloat32LE,
		}
		var ready chan struct{}
		otoCtx, ready, otoErr = oto.NewContext(op)
		if otoErr == nil {
			<-ready
			otoRate = rate
		}
	})
	if otoErr == nil && otoRate != rate {
		return nil, fmt.Errorf("output already running at %d Hz", otoRate)
	}
	return otoCtx, otoErr
}
