package todotxt

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedDate   = errors.New("malformed date")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrMissingArgument = errors.New("missing argument")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnstableLine marks a task whose saved line would be read back as a
	// different task.
	ErrUnstableLine = errors.New("task would not read back unchanged")
)

// IndexError reports a position that does not exist in a list.
// It satisfies errors.Is(err, ErrIndexOutOfRange).
type IndexError struct {
	List  string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	name := e.List
	if name == "" {
		name = "list"
	}
	if e.Len == 0 {
		return fmt.Sprintf("index %d out of range: %s is empty", e.Index, name)
	}
	return fmt.Sprintf("index %d out of range: %s has %d tasks (IDX must be < %d)", e.Index, name, e.Len, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// DateError identifies the task whose date field could not be read as a calendar date.
// It satisfies errors.Is(err, ErrMalformedDate).
type DateError struct {
	Field string
	Value string
	Task  string
}

func (e *DateError) Error() string {
	value := e.Value
	if strings.TrimSpace(value) == "" {
		value = "(none)"
	}
	return fmt.Sprintf("malformed %s date %q for task %q", e.Field, value, e.Task)
}

func (e *DateError) Is(target error) bool {
	return target == ErrMalformedDate
}

// ParseError is returned when a line cannot be tokenized into a Task.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q: %s", e.Line, e.Reason)
}

func missingArgument(what string) error {
	return fmt.Errorf("%w: %s", ErrMissingArgument, what)
}
