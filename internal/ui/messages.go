package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFPS is the frame rate when none is configured.
const DefaultFPS = 30

type frameMsg time.Time
type sourceEndedMsg struct{ err error }

// frameCmd schedules the next frame. Not scheduling it stops the loop.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// ender is implemented by sources that run out, such as files.
type ender interface {
	Done() <-chan struct{}
	Err() error
}

func waitForEnd(e ender) tea.Cmd {
	return func() tea.Msg {
		<-e.Done()
		return sourceEndedMsg{err: e.Err()}
	}
}

// fpsCounter averages the frame rate over windows of at least one second.
type fpsCounter struct {
	start  time.Time
	frames int
	fps    float64
}

func (c *fpsCounter) tick(now time.Time) {
	if c.start.IsZero() {
		c.start = now
		return
	}
	c.frames++
	if elapsed := now.Sub(c.start); elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.frames = 0
		c.start = now
	}
}
