package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   Debug,
		"INFO":    Info,
		"":        Info,
		"warning": Warn,
		"Error":   Error,
		"fatal":   Fatal,
	}

	for input, want := range tests {
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", input, err)
		}
		if got != want {
			t.Errorf("Parse(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := Parse("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestWriterLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriterLogger("virtfs", Warn, &buf)

	l.Debug("MountDir: hidden %s", "a")
	l.Info("MountDir: hidden %s", "b")
	l.Warn("MountDir: shown %s", "c")
	l.Named("zip").Error("ReadFile: shown %d", 4)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected filtered messages to be dropped, got %q", out)
	}
	if !strings.Contains(out, "MountDir: shown c") {
		t.Errorf("Expected warn message, got %q", out)
	}
	if !strings.Contains(out, "[virtfs/zip] ReadFile: shown 4") {
		t.Errorf("Expected named error message, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("Expected uncolored output, got %q", out)
	}
}

func TestNilLogger(t *testing.T) {
	var l *Logger
	l.Info("ignored %d", 1)
	if l.Named("x") != nil {
		t.Error("Expected nil child logger")
	}
}
