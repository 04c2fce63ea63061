package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/jot/internal/app"
)

func TestParseFlags(t *testing.T) {
	var stderr strings.Builder
	opts, err := parseFlags([]string{"-c", "/etc/jot.toml", "-log-level", "debug", "notes.txt"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags failed: %v (%s)", err, stderr.String())
	}

	if opts.Path != "notes.txt" {
		t.Errorf("Path = %q, want notes.txt", opts.Path)
	}
	if opts.ConfigPath != "/etc/jot.toml" {
		t.Errorf("ConfigPath = %q", opts.ConfigPath)
	}
	if opts.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", opts.LogLevel)
	}
}

func TestParseFlagsRequiresOnePath(t *testing.T) {
	for _, args := range [][]string{nil, {"a.txt", "b.txt"}} {
		var stderr strings.Builder
		_, err := parseFlags(args, &stderr)
		if err == nil {
			t.Errorf("parseFlags(%q) should fail", args)
		}
		if !strings.Contains(stderr.String(), "Usage: jot") {
			t.Errorf("parseFlags(%q) should print usage, got %q", args, stderr.String())
		}
	}
}

func TestParseFlagsHelpAndVersion(t *testing.T) {
	var stderr strings.Builder
	if _, err := parseFlags([]string{"-h"}, &stderr); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h = %v, want flag.ErrHelp", err)
	}

	opts, err := parseFlags([]string{"-version"}, &stderr)
	if err != nil || !opts.showVersion {
		t.Errorf("-version = (%+v, %v)", opts, err)
	}
}

func TestParseFlagsUnknownFlag(t *testing.T) {
	var stderr strings.Builder
	if _, err := parseFlags([]string{"-bogus", "f.txt"}, &stderr); err == nil {
		t.Error("unknown flag should fail")
	}
}

func TestLoadSettingsFlagOverrides(t *testing.T) {
	t.Setenv("JOT_LOG_LEVEL", "warn")
	logFile := filepath.Join(t.TempDir(), "jot.log")

	s, err := loadSettings(cliOptions{
		LogLevel: "debug",
		LogFile:  logFile,
	})
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, flag should win over environment", s.LogLevel)
	}
	if s.LogFile != logFile {
		t.Errorf("LogFile = %q, want %q", s.LogFile, logFile)
	}
}

func TestLoadSettingsInvalidLevel(t *testing.T) {
	if _, err := loadSettings(cliOptions{LogLevel: "loud"}); err == nil {
		t.Error("invalid log level should fail")
	}
}

func TestLoadSettingsMissingConfigFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if _, err := loadSettings(cliOptions{ConfigPath: missing}); err == nil {
		t.Error("an explicit config file that does not exist should fail")
	}
}

func TestReportNewFile(t *testing.T) {
	dir := t.TempDir()

	missing, err := app.LoadDocument(filepath.Join(dir, "new.txt"), 0)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	var stderr strings.Builder
	reportNewFile(&stderr, missing)
	if !strings.Contains(stderr.String(), "new.txt does not exist") {
		t.Errorf("missing file not reported: %q", stderr.String())
	}

	existing := filepath.Join(dir, "old.txt")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	doc, err := app.LoadDocument(existing, 0)
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	stderr.Reset()
	reportNewFile(&stderr, doc)
	if stderr.Len() != 0 {
		t.Errorf("existing file reported: %q", stderr.String())
	}
}
