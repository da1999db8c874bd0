package todotxt

import (
	"fmt"
	"strings"
)

// Parse classifies each whitespace-separated token of line exactly once:
// completion marker (first token only), priority, due date, context, project,
// and finally description. Blank input yields the zero Task.
func Parse(line string) (Task, error) {
	words := strings.Fields(line)
	var t Task
	if len(words) > 0 && words[0] == doneMarker {
		if len(words) < 2 {
			return Task{}, &ParseError{Line: line, Reason: "completion marker without a date"}
		}
		t.Completed = words[1]
		words = words[2:]
	}
	classify(&t, words)
	return t, nil
}

// MustParse is Parse for literals known to be valid. It panics on error.
func MustParse(line string) Task {
	t, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseLines parses one task per line. Positions follow line numbers.
func ParseLines(lines []string) (List, error) {
	list := make(List, 0, len(lines))
	for i, line := range lines {
		t, err := Parse(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		list = append(list, t)
	}
	list.Reindex()
	return list, nil
}

// parseFragment classifies text added to an existing task. The completion
// marker rule does not apply to fragments.
func parseFragment(text string) Task {
	var t Task
	classify(&t, strings.Fields(text))
	return t
}

func classify(t *Task, words []string) {
	var desc []string
	for _, w := range words {
		switch {
		case isPriorityToken(w):
			t.Priority = ParsePriority(w[1:2])
		case strings.HasPrefix(w, duePrefix):
			t.Due = strings.TrimPrefix(w, duePrefix)
		case strings.HasPrefix(w, priPrefix) && len(w) == len(priPrefix)+1:
			t.Priority = ParsePriority(w[len(priPrefix):])
		case w[0] == ContextMarker:
			t.Contexts = append(t.Contexts, w[1:])
		case w[0] == ProjectMarker:
			t.Projects = append(t.Projects, w[1:])
		default:
			desc = append(desc, w)
		}
	}
	t.Description = strings.Join(desc, " ")
}
