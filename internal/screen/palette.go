package screen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Brightness ramp for terminals without color, darkest first.
const asciiRamp = " .:-=+*#%@"

const ansiReset = "\x1b[0m"

// Mode describes how cell colors are written.
type Mode uint8

const (
	ModeAuto Mode = iota
	ModeOff       // NO_COLOR, dumb terminals
	Mode16
	Mode256
	ModeTrue
)

var modeNames = map[Mode]string{
	ModeAuto: "auto",
	ModeOff:  "ascii",
	Mode16:   "16",
	Mode256:  "256",
	ModeTrue: "truecolor",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// ParseMode accepts the names printed by Mode.String plus a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "ascii", "off", "none":
		return ModeOff, nil
	case "16", "ansi":
		return Mode16, nil
	case "256", "ansi256":
		return Mode256, nil
	case "truecolor", "true", "24bit":
		return ModeTrue, nil
	}
	return ModeAuto, fmt.Errorf("unknown color mode %q", s)
}

var (
	detectOnce sync.Once
	detected   Mode
)

// Detect reads the terminal's color profile once.
func Detect() Mode {
	detectOnce.Do(func() {
		switch termenv.EnvColorProfile() {
		case termenv.TrueColor:
			detected = ModeTrue
		case termenv.ANSI256:
			detected = Mode256
		case termenv.ANSI:
			detected = Mode16
		default:
			detected = ModeOff
		}
	})
	return detected
}

func brightnessChar(lum uint8) byte {
	return asciiRamp[int(lum)*(len(asciiRamp)-1)/255]
}

// luminance is ITU-R BT.601 in integer math.
func luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

func fgSeq(mode Mode, r, g, b uint8) string {
	switch mode {
	case ModeTrue:
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
	case Mode256:
		return fmt.Sprintf("\x1b[38;5;%dm", cube256(r, g, b))
	case Mode16:
		return fmt.Sprintf("\x1b[%dm", ansi16Code(nearest16(r, g, b), 30, 90))
	}
	return ""
}

func bgSeq(mode Mode, r, g, b uint8) string {
	switch mode {
	case ModeTrue:
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	case Mode256:
		return fmt.Sprintf("\x1b[48;5;%dm", cube256(r, g, b))
	case Mode16:
		return fmt.Sprintf("\x1b[%dm", ansi16Code(nearest16(r, g, b), 40, 100))
	}
	return ""
}

// ansi16Code turns a palette index into an SGR parameter, using the bright
// range for indices 8 and up.
func ansi16Code(i, normal, bright int) int {
	if i < 8 {
		return normal + i
	}
	return bright + i - 8
}

// cube256 maps to the 6×6×6 color cube of the 256-color palette.
func cube256(r, g, b uint8) int {
	ri := int(r) * 5 / 255
	gi := int(g) * 5 / 255
	bi := int(b) * 5 / 255
	return 16 + 36*ri + 6*gi + bi
}

// nearest16 picks the closest of the 16 ANSI colors in CIE Lab space.
func nearest16(r, g, b uint8) int {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best, bestDist := 0, -1.0
	for i, p := range ansi16Lab {
		if d := c.DistanceLab(p); bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

var ansi16Palette = [16][3]uint8{
	{0, 0, 0},       // black
	{205, 49, 49},   // red
	{13, 188, 121},  // green
	{229, 229, 16},  // yellow
	{36, 114, 200},  // blue
	{188, 63, 188},  // magenta
	{17, 168, 205},  // cyan
	{229, 229, 229}, // white
	{102, 102, 102}, // bright black
	{241, 76, 76},   // bright red
	{35, 209, 139},  // bright green
	{245, 245, 67},  // bright yellow
	{59, 142, 234},  // bright blue
	{214, 112, 214}, // bright magenta
	{41, 184, 219},  // bright cyan
	{255, 255, 255}, // bright white
}

var ansi16Lab = func() [16]colorful.Color {
	var out [16]colorful.Color
	for i, p := range ansi16Palette {
		out[i] = colorful.Color{R: float64(p[0]) / 255, G: float64(p[1]) / 255, B: float64(p[2]) / 255}
	}
	return out
}()
