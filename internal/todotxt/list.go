package todotxt

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// List is an ordered collection of tasks; a task's Position is its index.
type List []Task

// Reindex assigns Position from slice order.
func (l List) Reindex() {
	for i := range l {
		l[i].Position = i
	}
}

// Get returns a pointer into the list so callers can mutate in place.
func (l List) Get(i int) (*Task, error) {
	if i < 0 || i >= len(l) {
		return nil, &IndexError{Index: i, Len: len(l)}
	}
	return &l[i], nil
}

// Add appends t and returns its position.
func (l *List) Add(t Task) int {
	t.Position = len(*l)
	*l = append(*l, t)
	return t.Position
}

// CheckIndices fails on the first index that does not exist.
func (l List) CheckIndices(indices []int) error {
	for _, i := range indices {
		if i < 0 || i >= len(l) {
			return &IndexError{Index: i, Len: len(l)}
		}
	}
	return nil
}

// Remove deletes the tasks at indices and returns them in descending
// position order. Nothing is removed unless every index is valid.
func (l *List) Remove(indices []int) ([]Task, error) {
	if err := l.CheckIndices(indices); err != nil {
		return nil, err
	}
	var removed []Task
	for _, i := range descendingUnique(indices) {
		removed = append(removed, (*l)[i])
		*l = append((*l)[:i], (*l)[i+1:]...)
	}
	l.Reindex()
	return removed, nil
}

// Apply runs fn on each indexed task after validating all of them.
func (l List) Apply(indices []int, fn func(*Task)) error {
	if err := l.CheckIndices(indices); err != nil {
		return err
	}
	for _, i := range descendingUnique(indices) {
		fn(&l[i])
	}
	return nil
}

// Filter returns the tasks accepted by Matches, positions preserved.
func (l List) Filter(positives, negatives []string) []Task {
	var out []Task
	for _, t := range l {
		if Matches(t, positives, negatives) {
			out = append(out, t)
		}
	}
	return out
}

// Lines renders the list in save format, one task per element.
func (l List) Lines() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = FormatForSave(t)
	}
	return out
}

// ReadList parses r line by line. Blank lines are kept as empty tasks so that
// positions keep matching line numbers.
func ReadList(r io.Reader) (List, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseLines(lines)
}

// WriteList writes each task in save format followed by a newline.
func WriteList(w io.Writer, l List) error {
	bw := bufio.NewWriter(w)
	for _, line := range l.Lines() {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseIndices converts command-line arguments to positions, sorted
// descending with duplicates dropped.
func ParseIndices(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, missingArgument("expected at least one IDX")
	}
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("%w: IDX %q is not a number", ErrInvalidArgument, a)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: IDX %d is negative", ErrIndexOutOfRange, n)
		}
		out = append(out, n)
	}
	return descendingUnique(out), nil
}

func descendingUnique(indices []int) []int {
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	out := make([]int, 0, len(sorted))
	for i, n := range sorted {
		if i > 0 && n == sorted[i-1] {
			continue
		}
		out = append(out, n)
	}
	return out
}
