// Package logging builds the diagnostic logger shared by one t invocation.
package logging

import (
	"crypto/rand"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"
)

const DefaultPrefix = "t"

type Options struct {
	Level  string
	Writer io.Writer
	Prefix string
	// RunID tags every line; a fresh ULID is generated when empty.
	RunID string
}

// New returns a text logger without timestamps. Diagnostics go to stderr
// unless Writer is set.
func New(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	runID := opts.RunID
	if runID == "" {
		runID = NewRunID()
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(opts.Level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		ReportCaller:    false,
		Prefix:          prefix,
	})
	return logger.With("run", runID)
}

// Discard is a logger for callers that do not care about diagnostics.
func Discard() *log.Logger {
	return New(Options{Writer: io.Discard, Level: "error", RunID: "-"})
}

// ParseLevel maps a level name to a log.Level. Unknown names mean warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// NewRunID returns an upper-case ULID for correlating one invocation's lines.
func NewRunID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	if err != nil {
		return "unknown"
	}
	return id.String()
}
