package todotxt

import "strings"

// Matches reports whether every positive term and no negative term occurs in
// the task's description or tags. Comparison is a case-insensitive substring
// test; an empty positive set matches everything.
func Matches(t Task, positives, negatives []string) bool {
	text := strings.ToLower(haystack(t))
	for _, term := range negatives {
		if strings.Contains(text, strings.ToLower(term)) {
			return false
		}
	}
	for _, term := range positives {
		if !strings.Contains(text, strings.ToLower(term)) {
			return false
		}
	}
	return true
}

// SplitFilters separates raw filter words: a leading '-' marks a negative term
// (prefix removed), everything else is positive. A lone "-" is ignored.
func SplitFilters(raw []string) (positives, negatives []string) {
	for _, f := range raw {
		f = strings.TrimSpace(f)
		switch {
		case f == "" || f == "-":
			continue
		case strings.HasPrefix(f, "-"):
			negatives = append(negatives, f[1:])
		default:
			positives = append(positives, f)
		}
	}
	return positives, negatives
}

func haystack(t Task) string {
	return joinNonEmpty(t.Description, joinNonEmpty(tagWords(t)...))
}
