package cli

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/devrules/devrules/internal/config"
)

// newLogger builds the process logger from cfg. Logging is off by default
// because stdout carries the hook protocol and the fail-open path must
// stay quiet. When enabled, logs go to cfg.File or, failing that, stderr.
// The returned closer is nil unless a file was opened.
func newLogger(cfg config.LogConfig, stderr io.Writer) (*slog.Logger, io.Closer) {
	level, ok := parseLevel(cfg.Level)
	if !ok {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), nil
	}

	var (
		w      = stderr
		closer io.Closer
	)
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err == nil {
			w, closer = f, f
		}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer
}

// parseLevel maps a config level to a slog level. ok is false for "off"
// and anything unrecognized.
func parseLevel(level string) (slog.Level, bool) {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug, true
	case config.LogLevelInfo:
		return slog.LevelInfo, true
	case config.LogLevelWarn:
		return slog.LevelWarn, true
	case config.LogLevelError:
		return slog.LevelError, true
	default:
		return 0, false
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}
