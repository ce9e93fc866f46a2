package visualizer

import (
	"fmt"
	"strings"
)

// Layout selects which plots share the screen.
type Layout uint8

const (
	// Split puts the line plot above the waterfall.
	Split Layout = iota
	WaterfallOnly
	SpectrumOnly
)

// Layouts lists every layout in cycling order.
var Layouts = []Layout{Split, WaterfallOnly, SpectrumOnly}

func (l Layout) String() string {
	switch l {
	case Split:
		return "split"
	case WaterfallOnly:
		return "waterfall"
	case SpectrumOnly:
		return "spectrum"
	}
	return fmt.Sprintf("layout(%d)", uint8(l))
}

// Next cycles to the following layout.
func (l Layout) Next() Layout {
	return Layouts[(int(l)+1)%len(Layouts)]
}

// ParseLayout accepts the names printed by Layout.String.
func ParseLayout(s string) (Layout, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return Split, nil
	}
	for _, l := range Layouts {
		if l.String() == name {
			return l, nil
		}
	}
	return Split, fmt.Errorf("unknown layout %q (want split, waterfall or spectrum)", s)
}
