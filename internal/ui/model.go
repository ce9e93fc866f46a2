package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/olivier-w/spectra/internal/audio"
	"github.com/olivier-w/spectra/internal/spectrum"
	"github.com/olivier-w/spectra/internal/visualizer"
)

// chromeRows are the lines around the plots: header, range fields, status
// and help.
const chromeRows = 4

const statusTTL = 5 * time.Second

// Config is the static part of a session.
type Config struct {
	FPS      int
	Settings Settings
	// Notice is shown in the status line on the first frames, e.g. why
	// capture fell back to silence.
	Notice string
}

// Model is the Bubbletea model for the spectra TUI. It owns the session:
// settings change here between frames, and each frame tick pulls a spectrum
// from the analyser and renders it through the scope.
type Model struct {
	settings Settings
	keys     keyMap
	help     help.Model
	fields   [2]textinput.Model
	editing  bool

	source   audio.Source
	analyser spectrum.Source
	scope    *visualizer.Scope
	log      *zap.Logger

	interval time.Duration
	fps      fpsCounter
	started  time.Time
	elapsed  time.Duration

	width      int
	height     int
	status     string
	statusErr  bool
	statusTime time.Time
	quitting   bool
}

// New creates a Model around a running source, its analyser and a scope.
func New(cfg Config, src audio.Source, an spectrum.Source, scope *visualizer.Scope, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	fps := cfg.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	m := Model{
		settings: cfg.Settings,
		keys:     defaultKeyMap(),
		help:     help.New(),
		source:   src,
		analyser: an,
		scope:    scope,
		log:      log,
		interval: time.Second / time.Duration(fps),
	}
	for i := range m.fields {
		f := textinput.New()
		f.Prompt = ""
		f.CharLimit = 12
		f.Width = 8
		m.fields[i] = f
	}
	if cfg.Notice != "" {
		m.setStatus(cfg.Notice, true, time.Now())
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{frameCmd(m.interval), tea.SetWindowTitle("spectra: " + m.source.Name())}
	if e, ok := m.source.(ender); ok {
		cmds = append(cmds, waitForEnd(e))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m.frame(time.Time(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.nudge(1)
		case tea.MouseButtonWheelDown:
			m.nudge(-1)
		}
		return m, nil

	case sourceEndedMsg:
		if msg.err != nil {
			m.setStatus("input stopped: "+msg.err.Error(), true, time.Now())
		} else {
			m.setStatus("end of input", false, time.Now())
		}
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if err := m.source.Close(); err != nil {
			m.log.Warn("closing audio source", zap.Error(err))
		}
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case key.Matches(msg, m.keys.BinsUp):
		if !m.settings.StepBins(1) {
			m.setStatus(fmt.Sprintf("bin count is at most %d", spectrum.MaxBinCount), false, time.Now())
		}
	case key.Matches(msg, m.keys.BinsDown):
		if !m.settings.StepBins(-1) {
			m.setStatus(fmt.Sprintf("bin count is at least %d", spectrum.MinBinCount), false, time.Now())
		}
	case key.Matches(msg, m.keys.ColorMap):
		m.settings.ColorMap = m.settings.ColorMap.Next()
	case key.Matches(msg, m.keys.Layout):
		m.settings.Layout = m.settings.Layout.Next()
	case key.Matches(msg, m.keys.Focus):
		m.settings.ToggleFocus()
	case key.Matches(msg, m.keys.Up):
		m.nudge(1)
	case key.Matches(msg, m.keys.Down):
		m.nudge(-1)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Edit):
		m.editing = true
		f := &m.fields[m.settings.Focus]
		f.SetValue(fmt.Sprintf("%.1f", m.settings.Range.Get(m.settings.Focus)))
		f.CursorEnd()
		return m, f.Focus()
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.settings.Focus
	f := &m.fields[b]
	switch {
	case isCancel(msg):
		m.editing = false
		f.Blur()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.editing = false
		f.Blur()
		if err := m.settings.SetBound(b, f.Value()); err != nil {
			m.setStatus(err.Error(), true, time.Now())
			m.log.Info("range edit rejected", zap.Stringer("bound", b), zap.String("input", f.Value()), zap.Error(err))
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s set to %.1f", b, m.settings.Range.Get(b)), false, time.Now())
		return m, nil
	}

	var cmd tea.Cmd
	*f, cmd = f.Update(msg)
	return m, cmd
}

// nudge applies one wheel step to the focused bound.
func (m *Model) nudge(delta float64) {
	if err := m.settings.Nudge(delta); err != nil {
		m.setStatus(err.Error(), true, time.Now())
	}
}

// frame runs one iteration of the render loop with the settings as they are
// now, then schedules the next one.
func (m Model) frame(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	if m.analyser.BinCount() != m.settings.BinCount {
		if err := m.analyser.SetBinCount(m.settings.BinCount); err != nil {
			m.setStatus(err.Error(), true, now)
			m.settings.BinCount = m.analyser.BinCount()
		}
	}

	cfg := m.settings.Snapshot()
	if err := m.scope.Render(m.analyser.Frame(), cfg, m.settings.Layout, m.width, m.visRows()); err != nil {
		m.setStatus(frameError(err), true, now)
	}

	m.fps.tick(now)
	if m.started.IsZero() {
		m.started = now
	}
	m.elapsed = now.Sub(m.started)
	if m.status != "" && now.Sub(m.statusTime) > statusTTL {
		m.status = ""
	}
	return m, frameCmd(m.interval)
}

// frameError shortens the errors a frame can report for the status line.
func frameError(err error) string {
	switch {
	case errors.Is(err, spectrum.ErrInvalidRange):
		return "range rejected: " + err.Error()
	case errors.Is(err, spectrum.ErrBinCount):
		return "bin count rejected: " + err.Error()
	}
	return err.Error()
}

func (m *Model) setStatus(s string, isErr bool, now time.Time) {
	m.status = s
	m.statusErr = isErr
	m.statusTime = now
}

func (m Model) visRows() int {
	return max(m.height-chromeRows, 0)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("spectra"))
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(m.source.Name()))
	b.WriteByte('\n')

	if rows := m.visRows(); rows > 0 {
		b.WriteString(fitLines(m.scope.View(), rows))
		b.WriteByte('\n')
	}

	b.WriteString(m.renderFields())
	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
