// Package config resolves the effective settings for a t invocation.
//
// Values are layered, later sources winning: built-in defaults, the user
// config file, an explicit config file (T_CONFIG or --config), environment
// variables and finally command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
)

const (
	DefaultTodoFile     = "~/todo.txt"
	DefaultDoneFile     = "~/done.txt"
	DefaultDueDays      = 7
	DefaultSummaryDays  = 7
	DefaultExportFormat = "json"
	DefaultLogLevel     = "warn"
)

var ErrInvalid = errors.New("invalid config")

// Config holds every tunable. The toml tags double as the key names accepted
// by "config set".
type Config struct {
	TodoFile     string `toml:"todo_file"`
	DoneFile     string `toml:"done_file"`
	AutoArchive  bool   `toml:"auto_archive"`
	Colour       bool   `toml:"colour"`
	DonePriority string `toml:"done_priority"` // clear|keep
	DueDays      int    `toml:"due_days"`
	SummaryDays  int    `toml:"summary_days"`
	ExportDir    string `toml:"export_dir"`
	ExportFormat string `toml:"export_format"` // json|ndjson|yaml
	LogLevel     string `toml:"log_level"`
}

// Source names where a value came from; "config show" reports it.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceFile     Source = "config file"
	SourceEnv      Source = "env"
	SourceFlag     Source = "flag"
)

func Defaults() Config {
	return Config{
		TodoFile:     DefaultTodoFile,
		DoneFile:     DefaultDoneFile,
		AutoArchive:  true,
		Colour:       true,
		DonePriority: todotxt.ClearPriority.String(),
		DueDays:      DefaultDueDays,
		SummaryDays:  DefaultSummaryDays,
		ExportFormat: DefaultExportFormat,
		LogLevel:     DefaultLogLevel,
	}
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{
		"todo_file",
		"done_file",
		"auto_archive",
		"colour",
		"done_priority",
		"due_days",
		"summary_days",
		"export_dir",
		"export_format",
		"log_level",
	}
}

// Get renders a key's value as text.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "todo_file":
		return c.TodoFile, nil
	case "done_file":
		return c.DoneFile, nil
	case "auto_archive":
		return strconv.FormatBool(c.AutoArchive), nil
	case "colour":
		return strconv.FormatBool(c.Colour), nil
	case "done_priority":
		return c.DonePriority, nil
	case "due_days":
		return strconv.Itoa(c.DueDays), nil
	case "summary_days":
		return strconv.Itoa(c.SummaryDays), nil
	case "export_dir":
		return c.ExportDir, nil
	case "export_format":
		return c.ExportFormat, nil
	case "log_level":
		return c.LogLevel, nil
	}
	return "", unknownKey(key)
}

// Set parses value for key. The result is validated as a whole.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "todo_file":
		c.TodoFile = value
	case "done_file":
		c.DoneFile = value
	case "auto_archive", "colour":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, key, err)
		}
		if key == "colour" {
			c.Colour = b
		} else {
			c.AutoArchive = b
		}
	case "done_priority":
		c.DonePriority = strings.ToLower(value)
	case "due_days", "summary_days":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", ErrInvalid, key)
		}
		if key == "due_days" {
			c.DueDays = n
		} else {
			c.SummaryDays = n
		}
	case "export_dir":
		c.ExportDir = value
	case "export_format":
		c.ExportFormat = strings.ToLower(value)
	case "log_level":
		c.LogLevel = strings.ToLower(value)
	default:
		return unknownKey(key)
	}
	return c.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.TodoFile) == "" || strings.TrimSpace(c.DoneFile) == "" {
		return fmt.Errorf("%w: todo_file and done_file must be set", ErrInvalid)
	}
	if _, ok := todotxt.ParseDonePolicy(c.DonePriority); !ok {
		return fmt.Errorf("%w: done_priority must be clear or keep, got %q", ErrInvalid, c.DonePriority)
	}
	if c.DueDays <= 0 || c.SummaryDays <= 0 {
		return fmt.Errorf("%w: due_days and summary_days must be positive", ErrInvalid)
	}
	switch c.ExportFormat {
	case "json", "ndjson", "yaml":
	default:
		return fmt.Errorf("%w: export_format must be json, ndjson or yaml, got %q", ErrInvalid, c.ExportFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level must be debug, info, warn or error, got %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// DonePolicy returns the parsed done_priority. Validate has already rejected
// unknown values.
func (c Config) DonePolicy() todotxt.DonePolicy {
	p, _ := todotxt.ParseDonePolicy(c.DonePriority)
	return p
}

// ExportDirOrDefault falls back to an exports directory beside the todo file.
func (c Config) ExportDirOrDefault() string {
	if c.ExportDir != "" {
		return c.ExportDir
	}
	return filepath.Join(filepath.Dir(c.TodoFile), "exports")
}

func unknownKey(key string) error {
	keys := Keys()
	sort.Strings(keys)
	return fmt.Errorf("%w: unknown key %q (known: %s)", ErrInvalid, key, strings.Join(keys, ", "))
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("expected true/false, got %q", v)
}
