package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
)

type Format string

const (
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatNDJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: export format %q (want json, ndjson or yaml)", ErrInvalid, s)
}

// Extension is the file suffix for exports in this format.
func (f Format) Extension() string {
	return string(f)
}

type exportPayload struct {
	Tasks []todotxt.Task `json:"tasks" yaml:"tasks"`
}

// Encode writes tasks to w. json and yaml wrap them in a {"tasks": [...]}
// document; ndjson writes one object per line.
func Encode(w io.Writer, format Format, tasks []todotxt.Task) error {
	if tasks == nil {
		tasks = []todotxt.Task{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exportPayload{Tasks: tasks})
	case FormatNDJSON:
		enc := json.NewEncoder(w)
		for _, t := range tasks {
			if err := enc.Encode(t); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(exportPayload{Tasks: tasks}); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: export format %q", ErrInvalid, format)
}

// Export writes tasks to dir/<base>-<ULID>.<ext> and returns the path.
func Export(dir, base string, format Format, tasks []todotxt.Task) (string, error) {
	if strings.TrimSpace(dir) == "" {
		return "", errors.New("export directory is empty")
	}
	var buf bytes.Buffer
	if err := Encode(&buf, format, tasks); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.%s", base, newULID(), format.Extension()))
	if err := atomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
