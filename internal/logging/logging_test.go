package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		ok   bool
	}{
		{"debug", slog.LevelDebug, true},
		{"INFO", slog.LevelInfo, true},
		{" warn ", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelInfo, false},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseLevel(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_SessionAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)

	log.Debug("hidden")
	log.Info("recomputed", "alpha", 1.0)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}
	if !strings.Contains(out, "recomputed") || !strings.Contains(out, "session=") {
		t.Errorf("missing message or session attribute: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("expected no colour codes for a non-terminal writer")
	}
}

func TestOpen(t *testing.T) {
	log, closeFn, err := Open("", "info", true)
	if err != nil || log == nil || closeFn == nil {
		t.Fatalf("quiet open failed: %v", err)
	}
	if log.Enabled(context.Background(), slog.LevelError) {
		t.Error("quiet logger should drop errors too")
	}

	path := filepath.Join(t.TempDir(), "predprey.log")
	log, closeFn, err = Open(path, "debug", true)
	if err != nil {
		t.Fatalf("file open failed: %v", err)
	}
	log.Debug("to file")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing record: %q", data)
	}

	if _, _, err := Open("", "nope", false); err == nil {
		t.Error("expected error for bad level")
	}
}
