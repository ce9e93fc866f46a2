// Package axes draws tick marks and value labels as plain text for the edges
// of the plots.
package axes

import (
	"fmt"
	"math"
	"strings"
)

// DefaultTicks matches the number of divisions on both axes.
const DefaultTicks = 8

// Tick is one labelled division. T is its position in [0,1] along the axis.
type Tick struct {
	T     float64
	Value float64
	Label string
}

// Ticks returns n+1 evenly spaced ticks from lo to hi. Labels carry one
// decimal and, when set, the units.
func Ticks(lo, hi float64, n int, units string) []Tick {
	if n < 1 {
		n = 1
	}
	out := make([]Tick, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		v := lo + t*(hi-lo)
		label := fmt.Sprintf("%.1f", v)
		if units != "" {
			label += " " + units
		}
		out = append(out, Tick{T: t, Value: v, Label: label})
	}
	return out
}

// clampLabel keeps a label starting at pos inside [0, w).
func clampLabel(pos, size, w int) int {
	if pos > w-size {
		pos = w - size
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}

// X renders a horizontal axis width cells wide: a rule with tick marks and a
// line of centred labels. Labels that would collide with the previous one are
// dropped.
func X(width int, lo, hi float64, n int, units string) string {
	if width <= 0 {
		return ""
	}
	rule := []rune(strings.Repeat("─", width))
	labels := []rune(strings.Repeat(" ", width))

	next := 0
	for _, tk := range Ticks(lo, hi, n, units) {
		x := int(math.Round(tk.T * float64(width-1)))
		rule[x] = '┴'

		size := len(tk.Label)
		pos := clampLabel(x-size/2, size, width)
		if pos < next || size > width {
			continue
		}
		copy(labels[pos:], []rune(tk.Label))
		next = pos + size + 1
	}
	return string(rule) + "\n" + string(labels)
}

// Y renders a vertical axis height lines tall. The returned block is as wide
// as the longest label plus the rule, labels right-aligned against it, with
// the lowest value on the bottom line.
func Y(height int, lo, hi float64, n int) string {
	if height <= 0 {
		return ""
	}
	ticks := Ticks(lo, hi, n, "")
	lw := 0
	for _, tk := range ticks {
		lw = max(lw, len(tk.Label))
	}

	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(" ", lw) + "│"
	}
	for _, tk := range ticks {
		y := int(math.Round((1 - tk.T) * float64(height-1)))
		rows[y] = fmt.Sprintf("%*s┤", lw, tk.Label)
	}
	return strings.Join(rows, "\n")
}

// Width returns the column count Y will use for the given range.
func Width(lo, hi float64, n int) int {
	lw := 0
	for _, tk := range Ticks(lo, hi, n, "") {
		lw = max(lw, len(tk.Label))
	}
	return lw + 1
}
