package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Bin count limits, matching the FFT sizes a browser analyser accepts.
const (
	MinBinCount     = 32
	MaxBinCount     = 32768
	DefaultBinCount = 2048
)

// ErrBinCount is returned for FFT sizes that are not a power of two in
// [MinBinCount, MaxBinCount].
var ErrBinCount = errors.New("invalid bin count")

// Source supplies the spectrum of the current audio frame.
type Source interface {
	// Frame returns BinCount()/2 magnitudes in dB.
	Frame() Frame
	// BinCount returns the FFT size.
	BinCount() int
	// SetBinCount changes the FFT size.
	SetBinCount(n int) error
}

// SampleReader exposes the most recent mono samples of an audio stream.
type SampleReader interface {
	// Latest fills dst with the newest len(dst) samples, oldest first, and
	// returns how many were real (the rest are zero).
	Latest(dst []float64) int
}

// ValidateBinCount reports whether n is a usable FFT size.
func ValidateBinCount(n int) error {
	if n < MinBinCount || n > MaxBinCount || n&(n-1) != 0 {
		return fmt.Errorf("%w: %d (power of two in [%d, %d])", ErrBinCount, n, MinBinCount, MaxBinCount)
	}
	return nil
}

// Analyser computes dB spectra from the newest samples of a SampleReader:
// Blackman window, real FFT, magnitude scaled by 1/N, temporal smoothing
// and conversion to decibels.
type Analyser struct {
	mu       sync.Mutex
	reader   SampleReader
	smoother Smoother

	fftSize int
	fft     *fourier.FFT
	window  []float64
	samples []float64
	coeffs  []complex128
	out     Frame
}

// NewAnalyser creates an analyser reading from r with the given FFT size.
// A nil smoother uses Exponential(DefaultTimeConstant).
func NewAnalyser(r SampleReader, fftSize int, s Smoother) (*Analyser, error) {
	if s == nil {
		s = Exponential(DefaultTimeConstant)
	}
	a := &Analyser{reader: r, smoother: s}
	if err := a.SetBinCount(fftSize); err != nil {
		return nil, err
	}
	return a, nil
}

// BinCount returns the FFT size.
func (a *Analyser) BinCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fftSize
}

// SetBinCount re-plans the FFT for n samples and resets smoothing history.
func (a *Analyser) SetBinCount(n int) error {
	if err := ValidateBinCount(n); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if n == a.fftSize {
		return nil
	}
	a.fftSize = n
	a.fft = fourier.NewFFT(n)
	a.window = window.Blackman(n)
	a.samples = make([]float64, n)
	a.coeffs = make([]complex128, n/2+1)
	a.out = make(Frame, n/2)
	a.smoother.Reset(n / 2)
	return nil
}

// Frame analyses the newest samples. The returned slice is reused by the
// next call.
func (a *Analyser) Frame() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.reader.Latest(a.samples)
	for i, w := range a.window {
		a.samples[i] *= w
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.samples)

	scale := 1 / float64(a.fftSize)
	for k := range a.out {
		mag := a.smoother.Smooth(k, cmplx.Abs(a.coeffs[k])*scale)
		a.out[k] = toDecibels(mag)
	}
	return a.out
}

func toDecibels(mag float64) float64 {
	if mag <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(mag)
}
