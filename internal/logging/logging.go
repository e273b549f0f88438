// Package logging backs log/slog with a zap core.
package logging

import (
	"fmt"
	"log/slog"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// ServiceName is attached to every log line
const ServiceName = "fault-bot"

// Config holds logger configuration
type Config struct {
	Level       string
	Environment string // "development" or "production"
}

// Setup builds the zap logger, installs it as the slog default and returns
// it with a function that flushes buffered entries
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	var zapConfig zap.Config
	if cfg.Environment == "development" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	zapConfig.Level = zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.EncoderConfig.TimeKey = "timestamp"

	zl, err := zapConfig.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("build zap logger: %w", err)
	}

	logger := New(zl.Core())
	slog.SetDefault(logger)
	return logger, zl.Sync, nil
}

// New wraps a zap core in a slog logger tagged with the service name
func New(core zapcore.Core) *slog.Logger {
	return slog.New(zapslog.NewHandler(core)).With("service", ServiceName)
}

// ParseLevel parses the log level string, defaulting to info
func ParseLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return l
}
