package axes

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTicksEvenlySpaced(t *testing.T) {
	ticks := Ticks(-100, 0, 4, "dB")
	if len(ticks) != 5 {
		t.Fatalf("expected 5 ticks, got %d", len(ticks))
	}
	want := []string{"-100.0 dB", "-75.0 dB", "-50.0 dB", "-25.0 dB", "0.0 dB"}
	for i, tk := range ticks {
		if tk.Label != want[i] {
			t.Fatalf("tick %d: expected %q, got %q", i, want[i], tk.Label)
		}
	}
	if ticks[2].T != 0.5 {
		t.Fatalf("expected middle tick at 0.5, got %v", ticks[2].T)
	}
}

func TestTicksWithoutUnits(t *testing.T) {
	ticks := Ticks(0, 1024, 8, "")
	if ticks[1].Label != "128.0" {
		t.Fatalf("expected %q, got %q", "128.0", ticks[1].Label)
	}
}

func TestClampLabel(t *testing.T) {
	if got := clampLabel(18, 5, 20); got != 15 {
		t.Fatalf("expected right clamp to 15, got %d", got)
	}
	if got := clampLabel(-2, 5, 20); got != 0 {
		t.Fatalf("expected left clamp to 0, got %d", got)
	}
	if got := clampLabel(7, 5, 20); got != 7 {
		t.Fatalf("expected 7 unchanged, got %d", got)
	}
}

func TestXAxisLayout(t *testing.T) {
	out := X(41, 0, 1024, 4, "")
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 41 {
			t.Fatalf("line %d: expected 41 cells, got %d", i, n)
		}
	}
	if marks := strings.Count(lines[0], "┴"); marks != 5 {
		t.Fatalf("expected 5 tick marks, got %d", marks)
	}
	if !strings.HasPrefix(lines[1], "0.0") {
		t.Fatalf("expected first label clamped to the left edge, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], "1024.0") {
		t.Fatalf("expected last label clamped to the right edge, got %q", lines[1])
	}
}

func TestXAxisDropsCollidingLabels(t *testing.T) {
	out := X(12, -100, 0, 8, "")
	labels := strings.Split(out, "\n")[1]
	if strings.Count(labels, ".") >= 9 {
		t.Fatalf("expected some labels dropped in a narrow axis, got %q", labels)
	}
}

func TestYAxisPutsMinimumAtBottom(t *testing.T) {
	out := Y(9, -100, 0, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(lines))
	}
	if lines[0] != "   0.0┤" {
		t.Fatalf("expected top label 0.0, got %q", lines[0])
	}
	if lines[8] != "-100.0┤" {
		t.Fatalf("expected bottom label -100.0, got %q", lines[8])
	}
	if lines[1] != "      │" {
		t.Fatalf("expected plain rule between ticks, got %q", lines[1])
	}
	if Width(-100, 0, 4) != 7 {
		t.Fatalf("expected width 7, got %d", Width(-100, 0, 4))
	}
}
