package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/integrii/flaggy"

	"github.com/olivier-w/spectra/internal/audio"
	"github.com/olivier-w/spectra/internal/logging"
)

// AppName is the app name
const AppName = "spectra"

// AppDesc is the app description
const AppDesc = "Terminal spectrum analyser with a scrolling waterfall"

var version = "dev"

func main() {
	cfg := newZeroConfig()

	if doFlags(&cfg) {
		return
	}

	chk(cfg.validate(), "invalid config")

	log, stop, err := logging.New(cfg.logPath, cfg.logLevel)
	chk(err, "failed to open log")
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	startup := newStartupModel(sourceLabel(&cfg), openSessionCmd(ctx, &cfg, log))
	program := tea.NewProgram(startup, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func doFlags(cfg *config) bool {
	parser := flaggy.NewParser(AppName)
	parser.Description = AppDesc
	parser.Version = version

	listDevicesCmd := flaggy.Subcommand{
		Name:        "list-devices",
		ShortName:   "ld",
		Description: "list the audio input devices",
	}
	parser.AttachSubcommand(&listDevicesCmd, 1)

	parser.String(&cfg.source, "s", "source", "audio source (mic, file, tone)")
	parser.String(&cfg.file, "f", "file", "audio file to analyse (mp3, wav, flac, ogg)")
	parser.Bool(&cfg.play, "p", "play", "play the file while analysing it")
	parser.Int(&cfg.sampleRate, "r", "rate", "sample rate for mic and tone")
	parser.Int(&cfg.framesPerBuffer, "fb", "frames", "microphone frames per buffer")
	parser.Float64(&cfg.toneFreq, "t", "tone", "tone frequency in Hz")
	parser.Bool(&cfg.sweep, "sw", "sweep", "sweep the tone across the spectrum")
	parser.Int(&cfg.binCount, "n", "bins", "FFT size, a power of two in [32, 32768]")
	parser.String(&cfg.colorMap, "c", "colormap", "color map (perceptual, jet)")
	parser.Float64(&cfg.min, "lo", "min", "normalization range minimum in dB")
	parser.Float64(&cfg.max, "hi", "max", "normalization range maximum in dB")
	parser.String(&cfg.layout, "l", "layout", "layout (split, waterfall, spectrum)")
	parser.String(&cfg.smoother, "sm", "smoother", "smoother (exp, spring, none)")
	parser.Float64(&cfg.smoothing, "sf", "smoothing", "exponential time constant [0, 1)")
	parser.Int(&cfg.history, "hs", "history", "waterfall rows kept")
	parser.String(&cfg.filter, "fl", "filter", "waterfall sampling (nearest, linear)")
	parser.String(&cfg.color, "cm", "color", "terminal colors (auto, ascii, 16, 256, truecolor)")
	parser.Int(&cfg.fps, "fr", "fps", "frames per second")
	parser.String(&cfg.logPath, "lg", "log", "write a JSON log to this file")
	parser.String(&cfg.logLevel, "ll", "log-level", "log level (debug, info, warn, error)")

	chk(parser.Parse(), "failed to parse arguments")

	if listDevicesCmd.Used {
		devices, err := audio.Devices()
		chk(err, "failed to list devices")

		fmt.Println("input devices. '*' marks default")
		for _, d := range devices {
			star := ' '
			if d.Default {
				star = '*'
			}
			fmt.Printf("- %s (%s, %d ch, %.0f Hz) %c\n", d.Name, d.Host, d.Channels, d.SampleRate, star)
		}
		return true
	}

	return false
}

// sourceLabel names the source on the startup screen.
func sourceLabel(cfg *config) string {
	switch cfg.kind {
	case audio.KindFile:
		return filepath.Base(cfg.file)
	case audio.KindTone:
		return "tone"
	}
	return "microphone"
}

func chk(err error, wrap string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", wrap, err)
		os.Exit(1)
	}
}
