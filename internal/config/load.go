package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Loaded is the effective configuration together with where each key came from.
type Loaded struct {
	Config
	Sources map[string]Source
	// UserFile is where "config set" writes, whether or not it exists yet.
	UserFile string
	// Files lists the config files that were actually read, in order.
	Files []string
}

// Load layers defaults, the user file, explicitPath (or $T_CONFIG) and the
// environment. Flags are applied afterwards with Override.
func Load(explicitPath string) (*Loaded, error) {
	l := &Loaded{
		Config:   Defaults(),
		Sources:  make(map[string]Source),
		UserFile: UserConfigPath(),
	}
	for _, key := range Keys() {
		l.Sources[key] = SourceDefault
	}

	if l.UserFile != "" {
		if err := l.mergeFile(l.UserFile, SourceUserFile, false); err != nil {
			return nil, err
		}
	}

	if explicitPath == "" {
		explicitPath = os.Getenv("T_CONFIG")
	}
	if explicitPath != "" {
		if err := l.mergeFile(expandHome(explicitPath), SourceFile, true); err != nil {
			return nil, err
		}
	}

	l.mergeEnv()
	l.finalize()
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Override applies a command-line value on top of everything else.
func (l *Loaded) Override(key, value string) error {
	if err := l.Set(key, value); err != nil {
		return err
	}
	l.Sources[key] = SourceFlag
	l.finalize()
	return nil
}

func (l *Loaded) mergeFile(path string, source Source, required bool) error {
	md, err := toml.DecodeFile(path, &l.Config)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("loading config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: %s: unknown key %q", ErrInvalid, path, undecoded[0].String())
	}
	for _, key := range Keys() {
		if md.IsDefined(key) {
			l.Sources[key] = source
		}
	}
	l.Files = append(l.Files, path)
	return nil
}

// mergeEnv reads the variables the tool has always honoured.
func (l *Loaded) mergeEnv() {
	if v := os.Getenv("TODOFILE"); v != "" {
		l.TodoFile = v
		l.Sources["todo_file"] = SourceEnv
	}
	if v := os.Getenv("DONEFILE"); v != "" {
		l.DoneFile = v
		l.Sources["done_file"] = SourceEnv
	}
	// Any value other than "" or "false" turns auto-archive off.
	if v, ok := os.LookupEnv("T_DONT_AUTOARCHIVE"); ok && v != "" && v != "false" {
		l.AutoArchive = false
		l.Sources["auto_archive"] = SourceEnv
	}
	if v := os.Getenv("T_NO_COLOUR"); v == "true" || v == "1" {
		l.Colour = false
		l.Sources["colour"] = SourceEnv
	}
	if v := os.Getenv("T_LOG_LEVEL"); v != "" {
		l.LogLevel = strings.ToLower(strings.TrimSpace(v))
		l.Sources["log_level"] = SourceEnv
	}
}

func (l *Loaded) finalize() {
	l.TodoFile = expandHome(l.TodoFile)
	l.DoneFile = expandHome(l.DoneFile)
	l.ExportDir = expandHome(l.ExportDir)
}

// LoadFile reads a single TOML file on top of the defaults without touching
// the environment. A missing file yields the defaults.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save validates cfg and writes it as TOML, replacing path atomically.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return writeFileAtomic(path, buf.Bytes())
}

// UserConfigPath is $XDG_CONFIG_HOME/t/config.toml, falling back to
// ~/.config/t/config.toml.
func UserConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "t", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "t", "config.toml")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~"+string(os.PathSeparator)) {
		home, _ := os.UserHomeDir()
		if home != "" {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".config-*.toml")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}
