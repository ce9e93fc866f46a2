package ui

import (
	"fmt"
	"strings"

	"github.com/olivier-w/spectra/internal/spectrum"
	"github.com/olivier-w/spectra/internal/util"
)

func (m Model) renderFields() string {
	parts := make([]string, 0, 4)
	for _, b := range []spectrum.Bound{spectrum.BoundMin, spectrum.BoundMax} {
		parts = append(parts, m.renderField(b))
	}
	parts = append(parts,
		fieldStyle.Render("colormap "+m.settings.ColorMap.String()),
		fieldStyle.Render("layout "+m.settings.Layout.String()),
	)
	return strings.Join(parts, "  ")
}

func (m Model) renderField(b spectrum.Bound) string {
	focused := m.settings.Focus == b
	if focused && m.editing {
		return focusedFieldStyle.Render(b.String()+" ") + m.fields[b].View()
	}
	text := fmt.Sprintf("%s %.1f", b, m.settings.Range.Get(b))
	if focused {
		return focusedFieldStyle.Render("▸ " + text)
	}
	return fieldStyle.Render("  " + text)
}

func (m Model) renderStatus() string {
	line := fmt.Sprintf("%.1f fps  ·  bins %d  ·  %s  ·  %s",
		m.fps.fps,
		m.settings.BinCount,
		util.FormatSampleRate(m.source.SampleRate()),
		util.FormatDuration(m.elapsed),
	)
	out := statusStyle.Render(line)
	if m.status != "" {
		style := statusStyle
		if m.statusErr {
			style = errorStyle
		}
		out += "  " + style.Render(m.status)
	}
	return out
}

// fitLines pads or truncates s to exactly n lines.
func fitLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
