package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/olivier-w/spectra/internal/audio"
	"github.com/olivier-w/spectra/internal/spectrum"
	"github.com/olivier-w/spectra/internal/ui"
	"github.com/olivier-w/spectra/internal/visualizer"
)

type startupPhase uint8

const (
	phaseOpening startupPhase = iota
	phaseFailed
)

type startupResolvedMsg struct {
	model ui.Model
	err   error
}

// startupModel shows a spinner while the audio source and the render
// pipeline come up, then hands the program over to the ui.Model.
type startupModel struct {
	phase   startupPhase
	label   string
	errMsg  string
	width   int
	height  int
	spinner spinner.Model
	open    tea.Cmd
}

func newStartupModel(label string, open tea.Cmd) startupModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	return startupModel{
		phase:   phaseOpening,
		label:   label,
		spinner: s,
		open:    open,
	}
}

func (m startupModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.open)
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.phase != phaseOpening {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case startupResolvedMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.errMsg = msg.err.Error()
			return m, nil
		}

		cmds := []tea.Cmd{msg.model.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return msg.model, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.phase == phaseFailed || startupIsQuit(msg) {
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
	}
	return m, nil
}

func (m startupModel) View() string {
	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("spectra"))
	b.WriteString("\n\n  ")

	if m.phase == phaseFailed {
		b.WriteString(startupErrorStyle.Render(m.errMsg))
		b.WriteString("\n\n  ")
		b.WriteString(startupHelpStyle.Render("press any key to exit"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(startupStatusStyle.Render("Opening " + m.label + "..."))
	b.WriteString("\n\n  ")
	b.WriteString(startupHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

// openSessionCmd builds the session off the UI goroutine.
func openSessionCmd(ctx context.Context, cfg *config, log *zap.Logger) tea.Cmd {
	return func() tea.Msg {
		return buildSession(ctx, cfg, log)
	}
}

// buildSession starts the audio source and allocates the analyser and the
// render pipeline. An audio failure leaves the visualizer running on
// silence with a notice; a render failure is fatal.
func buildSession(ctx context.Context, cfg *config, log *zap.Logger) startupResolvedMsg {
	if log == nil {
		log = zap.NewNop()
	}

	tap := audio.NewTap(audio.DefaultTapSize)
	src, err := audio.Open(cfg.audioOptions(), log)
	if err == nil {
		if err = src.Start(ctx, tap); err != nil {
			src.Close()
		}
	}
	var notice string
	if err != nil {
		log.Error("audio unavailable, continuing without input", zap.Error(err))
		src = audio.Silence{Rate: cfg.sampleRate}
		notice = "no audio: " + err.Error()
	}

	an, err := spectrum.NewAnalyser(tap, cfg.binCount, cfg.smooth)
	if err != nil {
		src.Close()
		return startupResolvedMsg{err: err}
	}
	scope, err := visualizer.NewScope(cfg.binCount, cfg.scopeOptions(src.SampleRate()), log)
	if err != nil {
		log.Error("render pipeline unavailable", zap.Error(err))
		src.Close()
		return startupResolvedMsg{err: err}
	}

	log.Info("session started",
		zap.String("source", src.Name()),
		zap.Int("sample_rate", src.SampleRate()),
		zap.Int("bins", cfg.binCount),
	)
	model := ui.New(ui.Config{FPS: cfg.fps, Settings: cfg.settings(), Notice: notice}, src, an, scope, log)
	return startupResolvedMsg{model: model}
}

func startupIsQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
