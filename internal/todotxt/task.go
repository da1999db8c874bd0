// Package todotxt implements the task line format: parsing, serialising,
// filtering, relative dates, priority ordering and open/done reconciliation.
// It performs no I/O and never reads the wall clock; callers pass "today".
package todotxt

import (
	"regexp"
	"strings"
	"time"
)

const (
	ProjectMarker = '+'
	ContextMarker = '@'

	doneMarker  = "x"
	duePrefix   = "due:"
	priPrefix   = "pri:"
	DateLayout  = "2006-01-02"
	hoursPerDay = 24
)

// Task is one line of a todo or done file.
type Task struct {
	// Position is the index inside the list currently holding the task.
	// It is derived from list order and never persisted.
	Position    int      `json:"position" yaml:"position"`
	Description string   `json:"description" yaml:"description"`
	Priority    Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Projects    []string `json:"projects,omitempty" yaml:"projects,omitempty"`
	Contexts    []string `json:"contexts,omitempty" yaml:"contexts,omitempty"`
	Completed   string   `json:"completed,omitempty" yaml:"completed,omitempty"`
	Due         string   `json:"due,omitempty" yaml:"due,omitempty"`
}

// DonePolicy decides what happens to a task's priority when it is completed.
type DonePolicy int

const (
	ClearPriority DonePolicy = iota
	KeepPriority
)

// ParseDonePolicy maps "clear"/"keep" (case-insensitive) to a policy.
func ParseDonePolicy(s string) (DonePolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clear":
		return ClearPriority, true
	case "keep":
		return KeepPriority, true
	default:
		return ClearPriority, false
	}
}

func (p DonePolicy) String() string {
	if p == KeepPriority {
		return "keep"
	}
	return "clear"
}

func (t *Task) IsDone() bool {
	return t.Completed != ""
}

func (t *Task) IsScheduled() bool {
	return t.Due != ""
}

// AppendText adds text after the description. Tags, due dates and priority
// markers inside text are classified exactly as Parse would classify them.
func (t *Task) AppendText(text string) {
	frag := parseFragment(text)
	t.Description = joinNonEmpty(t.Description, frag.Description)
	t.absorb(frag, false)
}

// PrependText adds text before the description.
func (t *Task) PrependText(text string) {
	frag := parseFragment(text)
	t.Description = joinNonEmpty(frag.Description, t.Description)
	t.absorb(frag, true)
}

func (t *Task) absorb(frag Task, front bool) {
	if front {
		t.Projects = append(append([]string(nil), frag.Projects...), t.Projects...)
		t.Contexts = append(append([]string(nil), frag.Contexts...), t.Contexts...)
	} else {
		t.Projects = append(t.Projects, frag.Projects...)
		t.Contexts = append(t.Contexts, frag.Contexts...)
	}
	if frag.Due != "" {
		t.Due = frag.Due
	}
	if frag.Priority.IsSet() {
		t.Priority = frag.Priority
	}
	if len(t.Projects) == 0 {
		t.Projects = nil
	}
	if len(t.Contexts) == 0 {
		t.Contexts = nil
	}
}

func (t *Task) Prioritise(p Priority) {
	t.Priority = p
}

// MarkDone stamps today's date as the completion date. Under ClearPriority the
// priority is dropped.
func (t *Task) MarkDone(today time.Time, policy DonePolicy) {
	t.Completed = today.Format(DateLayout)
	if policy == ClearPriority {
		t.Priority = PriorityNone
	}
}

func (t *Task) MarkUndone() {
	t.Completed = ""
}

// Schedule sets the due date, resolving relative keywords against today.
func (t *Task) Schedule(today time.Time, keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return missingArgument("schedule needs a DATE")
	}
	t.Due = ResolveRelativeDate(today, keyword)
	return nil
}

func (t *Task) Unschedule() {
	t.Due = ""
}

// DaysOverdue returns today minus the due date in whole days; negative means
// the task is due in the future.
func (t *Task) DaysOverdue(today time.Time) (int, error) {
	due, err := t.calendarDate("due", t.Due)
	if err != nil {
		return 0, err
	}
	return daysBetween(due, today), nil
}

// DaysSinceDone returns today minus the completion date in whole days.
func (t *Task) DaysSinceDone(today time.Time) (int, error) {
	done, err := t.calendarDate("completion", t.Completed)
	if err != nil {
		return 0, err
	}
	return daysBetween(done, today), nil
}

func (t *Task) calendarDate(field, value string) (time.Time, error) {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, &DateError{Field: field, Value: value, Task: t.Description}
	}
	return d, nil
}

var markdownLink = regexp.MustCompile(`\[[^\]]+?\]\(([^)\s]+)\)`)

// Links returns the targets of markdown links, [text](url), in the description.
func (t *Task) Links() []string {
	var out []string
	for _, m := range markdownLink.FindAllStringSubmatch(t.Description, -1) {
		out = append(out, m[1])
	}
	return out
}

// Equal compares every persisted field. Position is ignored.
func (t Task) Equal(other Task) bool {
	return t.Description == other.Description &&
		t.Priority == other.Priority &&
		t.Completed == other.Completed &&
		t.Due == other.Due &&
		equalStrings(t.Projects, other.Projects) &&
		equalStrings(t.Contexts, other.Contexts)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / hoursPerDay)
}
