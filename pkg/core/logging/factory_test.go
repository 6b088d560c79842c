package logging

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected mdwlog.Level
	}{
		{"debug", mdwlog.LevelDebug},
		{"info", mdwlog.LevelInfo},
		{"warn", mdwlog.LevelWarn},
		{"warning", mdwlog.LevelWarn},
		{"error", mdwlog.LevelError},
		{"", mdwlog.LevelWarn},
		{"invalid", mdwlog.LevelWarn}, // defaults to warn
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if got := parseFormat(""); got != mdwlog.FormatText {
		t.Errorf("parseFormat(\"\") = %v, want text", got)
	}
	if got := parseFormat("json"); got != mdwlog.FormatJSON {
		t.Errorf("parseFormat(json) = %v, want json", got)
	}
	if got := parseFormat("nope"); got != mdwlog.FormatText {
		t.Errorf("parseFormat(nope) = %v, want text", got)
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig("recordkit")

	if cfg.Name != "recordkit" {
		t.Errorf("Name = %v, want recordkit", cfg.Name)
	}
	if cfg.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Level)
	}
	if cfg.Format != "text" {
		t.Errorf("Format = %v, want text", cfg.Format)
	}
}

func TestNewLogger_WritesToOutputs(t *testing.T) {
	var primary, extra bytes.Buffer

	logger := NewLogger(LoggerConfig{
		Name:              "test",
		Level:             "info",
		Format:            "text",
		Output:            &primary,
		AdditionalOutputs: []io.Writer{&extra},
	})

	logger.Info("loaded", mdwlog.Field("rows", 3))
	logger.Debug("hidden")

	for name, buf := range map[string]*bytes.Buffer{"primary": &primary, "extra": &extra} {
		out := buf.String()
		if !strings.Contains(out, "loaded") || !strings.Contains(out, "rows=3") {
			t.Errorf("%s output = %q, want the info entry", name, out)
		}
		if strings.Contains(out, "hidden") {
			t.Errorf("%s output contains a debug entry below the level", name)
		}
	}
}

func TestNewLogger_DefaultLevel(t *testing.T) {
	logger := NewLogger(DefaultLoggerConfig("test"))
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if logger.GetLevel() != mdwlog.LevelWarn {
		t.Errorf("level = %v, want warn", logger.GetLevel())
	}
}

func TestOpenLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "recordkit.log")

	f, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile() error = %v", err)
	}

	logger := NewLogger(LoggerConfig{Name: "file", Level: "info", Output: f})
	logger.Info("hello")
	f.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q, want entry", data)
	}
}

func TestOpenLogFile_Error(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	_, err := OpenLogFile(filepath.Join(blocker, "sub", "x.log"))
	if !mdwerror.HasCode(err, mdwerror.CodeIOError) {
		t.Errorf("error = %v, want IO_ERROR", err)
	}
}
