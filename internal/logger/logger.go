// Package logger owns the process-wide structured logger.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared logger. It discards everything until Init is called.
var Logger = zap.NewNop()

// Init builds a JSON logger at level writing to path. The terminal belongs to
// the TUI, so an empty path disables logging instead of falling back to stderr.
func Init(level, path string) error {
	if path == "" {
		Logger = zap.NewNop()
		return nil
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Logger = l
	return nil
}

// Named returns a child of Logger for a component.
func Named(name string) *zap.Logger {
	return Logger.Named(name)
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger.Sync()
}
