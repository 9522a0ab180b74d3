package cli

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/devrules/devrules/internal/config"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in     string
		want   slog.Level
		wantOK bool
	}{
		{config.LogLevelDebug, slog.LevelDebug, true},
		{config.LogLevelInfo, slog.LevelInfo, true},
		{config.LogLevelWarn, slog.LevelWarn, true},
		{config.LogLevelError, slog.LevelError, true},
		{config.LogLevelOff, 0, false},
		{"", 0, false},
		{"verbose", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseLevel(tt.in)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("parseLevel(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNewLogger_OffIsSilent(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	logger, closer := newLogger(config.LogConfig{Level: config.LogLevelOff}, &stderr)
	if closer != nil {
		t.Error("off logger should not hold a closer")
	}
	logger.Error("should not appear")
	if stderr.Len() != 0 {
		t.Errorf("off logger wrote %q", stderr.String())
	}
}

func TestNewLogger_StderrLevel(t *testing.T) {
	t.Parallel()

	var stderr bytes.Buffer
	logger, _ := newLogger(config.LogConfig{Level: config.LogLevelWarn}, &stderr)
	logger.Info("quiet")
	logger.Warn("loud", "target", "/")

	got := stderr.String()
	if strings.Contains(got, "quiet") {
		t.Errorf("info record leaked at warn level: %q", got)
	}
	if !strings.Contains(got, "msg=loud") || !strings.Contains(got, "target=/") {
		t.Errorf("warn record missing: %q", got)
	}
}

func TestNewLogger_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "devrules.log")
	var stderr bytes.Buffer
	logger, closer := newLogger(config.LogConfig{Level: config.LogLevelDebug, File: path}, &stderr)
	if closer == nil {
		t.Fatal("file logger should return a closer")
	}
	logger.Debug("to file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "msg=\"to file\"") {
		t.Errorf("log file = %q", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("file logger also wrote to stderr: %q", stderr.String())
	}
}

func TestNewLogger_UnwritableFileFallsBackToStderr(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	var stderr bytes.Buffer
	logger, closer := newLogger(config.LogConfig{Level: config.LogLevelInfo, File: filepath.Join(blocker, "x.log")}, &stderr)
	if closer != nil {
		t.Error("failed open should not return a closer")
	}
	logger.Info("fallback")
	if !strings.Contains(stderr.String(), "fallback") {
		t.Errorf("stderr = %q, want fallback record", stderr.String())
	}
}

func TestDependenciesClose_Nil(t *testing.T) {
	t.Parallel()
	var d *Dependencies
	d.Close()
	(&Dependencies{}).Close()
}
