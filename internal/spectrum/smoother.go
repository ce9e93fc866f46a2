package spectrum

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/harmonica"
)

// DefaultTimeConstant matches the smoothing of a browser analyser node.
const DefaultTimeConstant = 0.8

// Smoother blends each bin's new magnitude with its history.
type Smoother interface {
	// Reset discards history and sizes the smoother for n bins.
	Reset(n int)
	// Smooth returns the smoothed magnitude of bin i.
	Smooth(i int, v float64) float64
}

type exponential struct {
	tau  float64
	prev []float64
}

// Exponential returns a smoother computing tau*prev + (1-tau)*v per bin.
func Exponential(tau float64) Smoother {
	if tau < 0 {
		tau = 0
	}
	if tau > 1 {
		tau = 1
	}
	return &exponential{tau: tau}
}

func (e *exponential) Reset(n int) {
	e.prev = make([]float64, n)
}

func (e *exponential) Smooth(i int, v float64) float64 {
	s := e.tau*e.prev[i] + (1-e.tau)*v
	e.prev[i] = s
	return s
}

// springField smooths bins with critically damped springs.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

// Spring returns a smoother that pulls every bin toward its target with a
// harmonica spring stepped once per frame.
func Spring(fps int, frequency, damping float64) Smoother {
	if fps < 1 {
		fps = 1
	}
	return &springField{spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)}
}

func (s *springField) Reset(n int) {
	s.pos = make([]float64, n)
	s.vel = make([]float64, n)
}

func (s *springField) Smooth(i int, target float64) float64 {
	p, v := s.spring.Update(s.pos[i], s.vel[i], target)
	if p < 0 {
		// magnitudes are never negative; overshoot would turn into NaN dB
		p, v = 0, 0
	}
	s.pos[i] = p
	s.vel[i] = v
	return p
}

// ParseSmoother builds a smoother by name: "exp" (or "exponential") uses
// tau, "spring" uses fps-driven harmonica springs, "none" disables smoothing.
func ParseSmoother(name string, tau float64, fps int) (Smoother, error) {
	switch strings.ToLower(name) {
	case "", "exp", "exponential":
		return Exponential(tau), nil
	case "spring":
		return Spring(fps, 8.5, 0.72), nil
	case "none":
		return Exponential(0), nil
	}
	return nil, fmt.Errorf("unknown smoother %q (want exp, spring or none)", name)
}
