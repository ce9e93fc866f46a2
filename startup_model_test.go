package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/spectra/internal/ui"
)

func TestStartupModelErrorEntersFailedPhase(t *testing.T) {
	m := newStartupModel("tone", nil)

	model, cmd := m.Update(startupResolvedMsg{err: errBoom{}})
	if cmd != nil {
		t.Fatal("expected no command on error")
	}

	startup := model.(startupModel)
	if startup.phase != phaseFailed {
		t.Fatalf("expected phaseFailed, got %v", startup.phase)
	}
	if !strings.Contains(startup.View(), "boom") {
		t.Fatal("expected the error in the view")
	}

	if _, cmd := startup.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd == nil {
		t.Fatal("expected any key to quit after a failure")
	}
}

func TestStartupModelOpeningIgnoresOtherKeys(t *testing.T) {
	m := newStartupModel("tone", nil)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Fatal("expected no command while opening")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Fatal("expected q to quit while opening")
	}
	if !strings.Contains(m.View(), "Opening tone...") {
		t.Fatalf("expected opening label, got %q", m.View())
	}
}

func TestStartupModelHandsOverToSession(t *testing.T) {
	cfg := newZeroConfig()
	cfg.source = "tone"
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	msg := buildSession(ctx, &cfg, nil)
	if msg.err != nil {
		t.Fatalf("buildSession returned error: %v", msg.err)
	}

	m := newStartupModel("tone", nil)
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, cmd := sized.Update(msg)
	if _, ok := model.(ui.Model); !ok {
		t.Fatalf("expected ui.Model, got %T", model)
	}
	if cmd == nil {
		t.Fatal("expected init command")
	}
}

func TestBuildSessionFallsBackToSilence(t *testing.T) {
	cfg := newZeroConfig()
	cfg.file = "/nonexistent/spectra-test.wav"
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate returned error: %v", err)
	}

	msg := buildSession(context.Background(), &cfg, nil)
	if msg.err != nil {
		t.Fatalf("expected audio failure to be survivable, got %v", msg.err)
	}
	view := msg.model.View()
	if !strings.Contains(view, "no input") || !strings.Contains(view, "no audio") {
		t.Fatalf("expected silence source and notice, got %q", view)
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }
