package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFallbackWriter(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Level: "warn", Fallback: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Infow("hidden")
	log.Warnw("Seek failed", "position", "1s")
	_ = closeFn()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "Seek failed") || !strings.Contains(out, "position") {
		t.Errorf("missing warn message: %q", out)
	}
}

func TestVerboseForcesDebug(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := New(Options{Level: "error", Verbose: true, Fallback: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Debugw("polling")
	if !strings.Contains(buf.String(), "polling") {
		t.Errorf("debug message missing with verbose: %q", buf.String())
	}
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parrot.log")
	log, closeFn, err := New(Options{File: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Infow("Fetched transcript", "lang", "ja")
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"lang":"ja"`) {
		t.Errorf("log file = %q, want JSON fields", data)
	}
}

func TestDiscard(t *testing.T) {
	log, closeFn, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	log.Errorw("nowhere")
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
}
