package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level LogLevel
		want  string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"Warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo || cfg.Prefix != "jot" || cfg.Output == nil {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
}

func TestLoggerFormat(t *testing.T) {
	var sb strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &sb, Prefix: "jot"})

	logger.Info("saved %d bytes", 3)

	line := sb.String()
	if !strings.Contains(line, " [INFO] jot: saved 3 bytes") {
		t.Errorf("unexpected log line: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("log line should end with newline")
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var sb strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &sb})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	out := sb.String()
	if strings.Contains(out, "debug") || strings.Contains(out, "info") {
		t.Errorf("messages below the level were written: %q", out)
	}
	if !strings.Contains(out, "[WARN] warn") || !strings.Contains(out, "[ERROR] error") {
		t.Errorf("missing messages at or above the level: %q", out)
	}
	if logger.Level() != LogLevelWarn {
		t.Errorf("Level() = %v, want WARN", logger.Level())
	}
}

func TestLoggerFieldsSorted(t *testing.T) {
	var sb strings.Builder
	base := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &sb})

	logger := base.WithField("session", "s1").WithComponent("loop")
	logger.Info("tick")

	if !strings.Contains(sb.String(), "tick {component=loop, session=s1}") {
		t.Errorf("fields not rendered in order: %q", sb.String())
	}

	sb.Reset()
	base.Info("plain")
	if strings.Contains(sb.String(), "{") {
		t.Errorf("WithField mutated the parent logger: %q", sb.String())
	}
}

func TestLoggerDisable(t *testing.T) {
	var sb strings.Builder
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &sb})
	logger.Disable()
	logger.Error("hidden")

	if sb.Len() != 0 {
		t.Errorf("disabled logger wrote %q", sb.String())
	}

	NullLogger().WithField("k", "v").Error("also hidden")
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "jot.log")

	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f, Prefix: "jot"})
	logger.Info("first")
	f.Close()

	f, err = OpenLogFile(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f, Prefix: "jot"}).Info("second")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if strings.Count(string(data), "\n") != 2 {
		t.Errorf("log file should be appended to, got %q", data)
	}
}
