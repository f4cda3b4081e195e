package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alkime/sounder/internal/config"
)

// SetupLogger configures structured logging based on environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, handlerOptions(cfg)))
	slog.SetDefault(logger)

	return logger
}

// SetupFileLogger routes structured logs to cfg.LogFile instead of
// stdout, for when a TUI owns the terminal. With no file configured
// logs are discarded. The returned closer flushes and closes the file.
func SetupFileLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	if cfg.LogFile == "" {
		logger := slog.New(slog.NewJSONHandler(io.Discard, handlerOptions(cfg)))
		slog.SetDefault(logger)

		return logger, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(f, handlerOptions(cfg)))
	slog.SetDefault(logger)

	return logger, func() { _ = f.Close() }, nil
}

func handlerOptions(cfg *config.Config) *slog.HandlerOptions {
	// Determine log level
	logLevel := slog.LevelInfo
	if cfg.Env == "development" {
		logLevel = slog.LevelDebug
	}
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}

	return &slog.HandlerOptions{
		Level: logLevel,
	}
}
