// Package logging routes slog output to a rotating file or to stderr.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chat_stats/pkg/config"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxLogSizeMB  = 5
	maxLogBackups = 5
	maxLogAgeDays = 14
)

// Stderr as log_file sends logs to standard error instead of a file.
const Stderr = "-"

// Init installs the default slog logger described by cfg. Without log_file
// the log lives under the directory the configuration was loaded from. On
// error logs are discarded and the returned logger is still usable.
func Init(cfg config.Config) (*slog.Logger, error) {
	out, err := openOutput(cfg.LogPath())
	if err != nil {
		out = io.Discard
	}
	logger := slog.New(newHandler(cfg.LogFormat, out, &slog.HandlerOptions{
		Level: ParseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)
	return logger, err
}

func openOutput(path string) (io.Writer, error) {
	if path == Stderr {
		return os.Stderr, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}, nil
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(format string, out io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if strings.EqualFold(strings.TrimSpace(format), "text") {
		return slog.NewTextHandler(out, opts)
	}
	return slog.NewJSONHandler(out, opts)
}
