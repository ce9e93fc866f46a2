// Package logging builds the process logger. The terminal belongs to the UI,
// so log records go to a file or nowhere.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a level name to a zap level. Unknown names mean info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// EncoderConfig is production JSON with ISO8601 timestamps.
func EncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// New returns a JSON logger appending to path. An empty path returns a no-op
// logger. The returned function flushes and closes the file.
func New(path, level string) (*zap.Logger, func(), error) {
	if path == "" {
		return zap.NewNop(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "creating log directory for %s", path)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "opening log file %s", path)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(EncoderConfig()),
		zapcore.AddSync(file),
		zap.NewAtomicLevelAt(ParseLevel(level)),
	)
	// Per-frame warnings would otherwise write 30 records a second.
	core = zapcore.NewSamplerWithOptions(core, 1e9, 5, 100)

	logger := zap.New(core, zap.AddCaller())
	stop := func() {
		_ = logger.Sync()
		_ = file.Close()
	}
	return logger, stop, nil
}
