package audio

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/harmonica"
)

const (
	DefaultToneFreq = 440.0
	toneAmplitude   = 0.5

	sweepLow    = 50.0
	sweepPeriod = 10.0 // seconds from low to high
)

// Tone synthesizes a sine wave. With sweep set the pitch glides
// logarithmically up from 50Hz to just below Nyquist and starts over; a
// spring eases the amplitude in so the first frames do not click.
type Tone struct {
	rate  int
	freq  float64
	sweep bool

	phase float64
	n     int

	gain, gainVel float64
	spring        harmonica.Spring

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewTone returns a generator at rate. A non-positive freq uses 440Hz.
func NewTone(rate int, freq float64, sweep bool) *Tone {
	if freq <= 0 {
		freq = DefaultToneFreq
	}
	return &Tone{
		rate:   rate,
		freq:   freq,
		sweep:  sweep,
		spring: harmonica.NewSpring(1/float64(rate), 30, 1),
	}
}

func (t *Tone) Name() string {
	if t.sweep {
		return "sweep"
	}
	return fmt.Sprintf("tone %.0f Hz", t.freq)
}

func (t *Tone) SampleRate() int { return t.rate }

// Frequency returns the pitch of the n-th sample.
func (t *Tone) Frequency(n int) float64 {
	if !t.sweep {
		return t.freq
	}
	high := float64(t.rate) / 2.2
	pos := math.Mod(float64(n)/float64(t.rate), sweepPeriod) / sweepPeriod
	return sweepLow * math.Pow(high/sweepLow, pos)
}

// Read fills dst with the next samples. It never fails.
func (t *Tone) Read(dst []float64) (int, error) {
	step := 2 * math.Pi / float64(t.rate)
	for i := range dst {
		t.gain, t.gainVel = t.spring.Update(t.gain, t.gainVel, toneAmplitude)
		dst[i] = t.gain * math.Sin(t.phase)
		t.phase = math.Mod(t.phase+step*t.Frequency(t.n), 2*math.Pi)
		t.n++
	}
	return len(dst), nil
}

// Start paces Read into tap at real time.
func (t *Tone) Start(ctx context.Context, tap *Tap) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return nil
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		_ = pump(ctx, tap, t.rate, t.Read)
	}()
	return nil
}

func (t *Tone) Close() error {
	t.mu.Lock()
	cancel := t.cancel
	t.mu.Unlock()
	if cancel != nil {
		cancel()
		t.wg.Wait()
	}
	return nil
}

// Silence writes nothing. It stands in when capture failed so the display
// keeps running.
type Silence struct {
	Rate int
}

func (s Silence) Name() string                      { return "no input" }
func (s Silence) SampleRate() int                   { return s.Rate }
func (s Silence) Start(context.Context, *Tap) error { return nil }
func (s Silence) Close() error                      { return nil }
