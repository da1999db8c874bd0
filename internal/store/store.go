package store

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/amirbrooks/tasker-todotxt/internal/logging"
	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

var (
	ErrInvalid = errors.New("invalid")
	timeNow    = func() time.Time { return time.Now().UTC() }
)

// FileError ties a load failure to the file it came from. The underlying
// *todotxt.ParseError stays reachable through errors.As.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

// Workspace is the pair of files backing one todo list: open tasks and
// completed tasks.
type Workspace struct {
	TodoPath string
	DonePath string

	logger *log.Logger
	// last content read or written per path; Save skips identical files.
	seen map[string][]byte
}

// Lists holds both collections of a workspace.
type Lists struct {
	Open todotxt.List
	Done todotxt.List
}

// Open prepares a workspace. Nothing is read or created until Load/Save.
func Open(todoPath, donePath string, logger *log.Logger) (*Workspace, error) {
	if strings.TrimSpace(todoPath) == "" || strings.TrimSpace(donePath) == "" {
		return nil, fmt.Errorf("%w: todo and done file paths are required", ErrInvalid)
	}
	todoPath, donePath = filepath.Clean(todoPath), filepath.Clean(donePath)
	if todoPath == donePath {
		return nil, fmt.Errorf("%w: todo and done file must differ (%s)", ErrInvalid, todoPath)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Workspace{
		TodoPath: todoPath,
		DonePath: donePath,
		logger:   logger,
		seen:     make(map[string][]byte),
	}, nil
}

// Load reads both files. A missing file is an empty list.
func (w *Workspace) Load() (*Lists, error) {
	open, err := w.readList(w.TodoPath)
	if err != nil {
		return nil, err
	}
	done, err := w.readList(w.DonePath)
	if err != nil {
		return nil, err
	}
	return &Lists{Open: open, Done: done}, nil
}

func (w *Workspace) readList(path string) (todotxt.List, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		w.logger.Debug("file missing, starting empty", "file", path)
		w.seen[path] = nil
		return todotxt.List{}, nil
	}
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	list, err := todotxt.ReadList(bytes.NewReader(b))
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	w.seen[path] = b
	w.logger.Debug("loaded", "file", path, "tasks", len(list))
	return list, nil
}

// Save writes both lists, one task per line, replacing each file atomically.
// A file whose content would not change is left alone.
func (w *Workspace) Save(l *Lists) error {
	if err := w.writeList(w.TodoPath, l.Open); err != nil {
		return err
	}
	return w.writeList(w.DonePath, l.Done)
}

func (w *Workspace) writeList(path string, list todotxt.List) error {
	var buf bytes.Buffer
	if err := todotxt.WriteList(&buf, list); err != nil {
		return err
	}
	data := buf.Bytes()
	if prev, ok := w.seen[path]; ok && bytes.Equal(prev, data) {
		w.logger.Debug("unchanged, not writing", "file", path)
		return nil
	}
	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return &FileError{Path: path, Err: err}
	}
	w.seen[path] = data
	w.logger.Debug("saved", "file", path, "tasks", len(list))
	return nil
}

func atomicWriteFile(path string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := filepath.Join(dir, fmt.Sprintf(".tmp-%s", newULID()))
	if err := os.WriteFile(tmp, data, perm); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// Rename is atomic on same filesystem.
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func newULID() string {
	t := ulid.Timestamp(timeNow())
	entropy := ulid.Monotonic(randReader{}, 0)
	id, err := ulid.New(t, entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}
