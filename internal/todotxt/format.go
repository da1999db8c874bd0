package todotxt

import (
	"fmt"
	"strings"
)

// FormatForSave renders the persisted form:
//
//	[x DONE | (P)] description [pri:P] [due:DATE] [+project...] [@context...]
//
// pri:P only appears on a completed task that kept its priority.
func FormatForSave(t Task) string {
	lead, tags := DisplayParts(t)
	return joinNonEmpty(lead, tags)
}

// CheckStable reports ErrUnstableLine when the saved form of t parses into a
// different task, such as an open task whose description starts with the
// word "x".
func CheckStable(t Task) error {
	saved := FormatForSave(t)
	back, err := Parse(saved)
	if err != nil || !back.Equal(t) {
		return fmt.Errorf("%w: %q", ErrUnstableLine, saved)
	}
	return nil
}

// FormatForDisplay is the save form prefixed by a right-aligned index. It
// carries no colour; see DisplayParts for the pieces a renderer may style.
func FormatForDisplay(t Task, index int) string {
	return joinNonEmpty(fmt.Sprintf("%3d", index), FormatForSave(t))
}

// DisplayParts splits the line into its leading part (markers, description,
// due date) and its trailing tag part.
func DisplayParts(t Task) (lead string, tags string) {
	lead = joinNonEmpty(leadMarker(t), t.Description, donePriority(t), dueField(t))
	return lead, joinNonEmpty(tagWords(t)...)
}

// SummaryLine is the compact form used by the done summary: description and
// tags only.
func SummaryLine(t Task) string {
	return joinNonEmpty(t.Description, joinNonEmpty(tagWords(t)...))
}

func leadMarker(t Task) string {
	if t.IsDone() {
		return doneMarker + " " + t.Completed
	}
	return t.Priority.String()
}

func donePriority(t Task) string {
	if t.IsDone() && t.Priority.IsSet() {
		return priPrefix + t.Priority.Letter()
	}
	return ""
}

func dueField(t Task) string {
	if t.Due == "" {
		return ""
	}
	return duePrefix + t.Due
}

func tagWords(t Task) []string {
	words := make([]string, 0, len(t.Projects)+len(t.Contexts))
	for _, p := range t.Projects {
		words = append(words, string(ProjectMarker)+p)
	}
	for _, c := range t.Contexts {
		words = append(words, string(ContextMarker)+c)
	}
	return words
}

func joinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
