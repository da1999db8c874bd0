package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Writer: &buf, RunID: "RUN1"})
	logger.Debug("hidden")
	logger.Warn("shown", "file", "todo.txt")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at warn level: %q", out)
	}
	for _, want := range []string{"shown", "run=RUN1", "file=todo.txt", "t:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		" INFO ":  log.InfoLevel,
		"warn":    log.WarnLevel,
		"error":   log.ErrorLevel,
		"verbose": log.WarnLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewRunID(t *testing.T) {
	id := NewRunID()
	if _, err := ulid.ParseStrict(id); err != nil {
		t.Fatalf("expected a ULID, got %q: %v", id, err)
	}
}
