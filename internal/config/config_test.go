package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// isolate points the user config location and every honoured variable at a
// clean state.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"TODOFILE", "DONEFILE", "T_DONT_AUTOARCHIVE", "T_NO_COLOUR", "T_LOG_LEVEL", "T_CONFIG"} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	l, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !l.AutoArchive || !l.Colour {
		t.Fatalf("expected auto-archive and colour on by default: %+v", l.Config)
	}
	if l.DueDays != DefaultDueDays || l.ExportFormat != "json" {
		t.Fatalf("unexpected defaults %+v", l.Config)
	}
	if l.Sources["todo_file"] != SourceDefault {
		t.Fatalf("expected default source, got %q", l.Sources["todo_file"])
	}
	if len(l.Files) != 0 {
		t.Fatalf("expected no files read, got %v", l.Files)
	}
}

func TestLoadLayering(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "t", "config.toml"), "todo_file = \"/u/todo.txt\"\ndue_days = 3\ndone_priority = \"keep\"\n")
	explicit := filepath.Join(dir, "explicit.toml")
	writeFile(t, explicit, "due_days = 14\n")
	t.Setenv("T_CONFIG", explicit)
	t.Setenv("DONEFILE", "/env/done.txt")
	t.Setenv("T_DONT_AUTOARCHIVE", "yes")
	t.Setenv("T_NO_COLOUR", "1")

	l, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cases := []struct {
		key    string
		want   string
		source Source
	}{
		{"todo_file", "/u/todo.txt", SourceUserFile},
		{"due_days", "14", SourceFile},
		{"done_priority", "keep", SourceUserFile},
		{"done_file", "/env/done.txt", SourceEnv},
		{"auto_archive", "false", SourceEnv},
		{"colour", "false", SourceEnv},
		{"summary_days", "7", SourceDefault},
	}
	for _, tc := range cases {
		got, err := l.Get(tc.key)
		if err != nil {
			t.Fatalf("get %s: %v", tc.key, err)
		}
		if got != tc.want || l.Sources[tc.key] != tc.source {
			t.Errorf("%s = %q (%s), want %q (%s)", tc.key, got, l.Sources[tc.key], tc.want, tc.source)
		}
	}
	if len(l.Files) != 2 {
		t.Fatalf("expected two files read, got %v", l.Files)
	}
}

func TestDontAutoarchiveFalseKeepsArchiving(t *testing.T) {
	isolate(t)
	t.Setenv("T_DONT_AUTOARCHIVE", "false")
	l, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !l.AutoArchive {
		t.Fatalf("expected auto-archive to stay on")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.toml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "t", "config.toml"), "colour = true\ncolor = false\n")
	_, err := Load("")
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestOverride(t *testing.T) {
	isolate(t)
	l, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := l.Override("todo_file", "/flag/todo.txt"); err != nil {
		t.Fatalf("override: %v", err)
	}
	if l.TodoFile != "/flag/todo.txt" || l.Sources["todo_file"] != SourceFlag {
		t.Fatalf("override not applied: %q %q", l.TodoFile, l.Sources["todo_file"])
	}
}

func TestSetValidates(t *testing.T) {
	cfg := Defaults()
	cases := []struct {
		key, value string
		wantErr    bool
	}{
		{"done_priority", "KEEP", false},
		{"done_priority", "drop", true},
		{"due_days", "0", true},
		{"due_days", "x", true},
		{"colour", "off", false},
		{"export_format", "yaml", false},
		{"export_format", "xml", true},
		{"nope", "1", true},
	}
	for _, tc := range cases {
		c := cfg
		err := c.Set(tc.key, tc.value)
		if (err != nil) != tc.wantErr {
			t.Errorf("Set(%s, %s) error = %v, wantErr %v", tc.key, tc.value, err, tc.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalid) {
			t.Errorf("Set(%s, %s) error %v is not ErrInvalid", tc.key, tc.value, err)
		}
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	cfg := Defaults()
	cfg.DonePriority = "keep"
	cfg.SummaryDays = 30
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if got != cfg {
		t.Fatalf("got %+v, want %+v", got, cfg)
	}

	missing, err := LoadFile(filepath.Join(dir, "missing.toml"))
	if err != nil || missing != Defaults() {
		t.Fatalf("expected defaults for missing file, got %+v %v", missing, err)
	}
}

func TestExportDirOrDefault(t *testing.T) {
	cfg := Defaults()
	cfg.TodoFile = "/data/todo.txt"
	if got := cfg.ExportDirOrDefault(); got != filepath.Join("/data", "exports") {
		t.Fatalf("unexpected export dir %q", got)
	}
}
