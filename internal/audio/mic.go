package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"go.uber.org/zap"
)

// DefaultFramesPerBuffer is about 23ms at 44.1kHz.
const DefaultFramesPerBuffer = 1024

// Mic captures the default input device in mono.
type Mic struct {
	rate   int
	frames int
	log    *zap.Logger

	mu     sync.Mutex
	stream *portaudio.Stream
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMic describes a capture stream; nothing is opened until Start.
func NewMic(rate, framesPerBuffer int, log *zap.Logger) *Mic {
	if framesPerBuffer <= 0 {
		framesPerBuffer = DefaultFramesPerBuffer
	}
	return &Mic{rate: rate, frames: framesPerBuffer, log: log}
}

func (m *Mic) Name() string    { return "microphone" }
func (m *Mic) SampleRate() int { return m.rate }

// Start opens the default input stream. Any PortAudio failure is reported as
// ErrInitialization.
func (m *Mic) Start(ctx context.Context, tap *Tap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream != nil {
		return nil
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: portaudio: %v", ErrInitialization, err)
	}
	in := make([]float32, m.frames)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(m.rate), len(in), in)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: opening input device: %v", ErrInitialization, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("%w: starting input stream: %v", ErrInitialization, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	m.stream = stream
	m.cancel = cancel
	m.wg.Add(1)
	go m.capture(ctx, stream, in, tap)

	m.log.Info("microphone capture started", zap.Int("sample_rate", m.rate), zap.Int("frames_per_buffer", m.frames))
	return nil
}

func (m *Mic) capture(ctx context.Context, stream *portaudio.Stream, in []float32, tap *Tap) {
	defer m.wg.Done()
	out := make([]float64, len(in))
	for ctx.Err() == nil {
		if err := stream.Read(); err != nil {
			// An overflow drops a buffer; the stream keeps going.
			if err == portaudio.InputOverflowed {
				continue
			}
			m.log.Warn("microphone capture stopped", zap.Error(err))
			return
		}
		for i, s := range in {
			out[i] = float64(s)
		}
		tap.Write(out)
	}
}

// Close stops capture and releases the device.
func (m *Mic) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stream == nil {
		return nil
	}

	m.cancel()
	m.wg.Wait()
	err := m.stream.Stop()
	if cerr := m.stream.Close(); err == nil {
		err = cerr
	}
	portaudio.Terminate()
	m.stream = nil
	return err
}

// Device describes one PortAudio input device.
type Device struct {
	Name       string
	Host       string
	Channels   int
	SampleRate float64
	Default    bool
}

// Devices lists the input devices PortAudio can see.
func Devices() ([]Device, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: portaudio: %v", ErrInitialization, err)
	}
	defer portaudio.Terminate()

	all, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	def, _ := portaudio.DefaultInputDevice()

	var out []Device
	for _, d := range all {
		if d.MaxInputChannels < 1 {
			continue
		}
		host := ""
		if d.HostApi != nil {
			host = d.HostApi.Name
		}
		out = append(out, Device{
			Name:       d.Name,
			Host:       host,
			Channels:   d.MaxInputChannels,
			SampleRate: d.DefaultSampleRate,
			Default:    def != nil && d.Name == def.Name,
		})
	}
	return out, nil
}
