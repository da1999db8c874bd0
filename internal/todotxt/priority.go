package todotxt

import (
	"fmt"
	"strings"
)

// Priority is a letter grade 'A' (highest) to 'Z' (lowest). The zero value is
// PriorityNone, which sorts after every letter.
type Priority byte

const PriorityNone Priority = 0

// ParsePriority accepts a single letter in either case. Anything else maps to
// PriorityNone.
func ParsePriority(s string) Priority {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return PriorityNone
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 'A' || c > 'Z' {
		return PriorityNone
	}
	return Priority(c)
}

func (p Priority) IsSet() bool {
	return p >= 'A' && p <= 'Z'
}

// Letter returns "A".."Z", or "" for PriorityNone.
func (p Priority) Letter() string {
	if !p.IsSet() {
		return ""
	}
	return string(rune(p))
}

// String renders the save-format marker, "(A)", or "" when unset.
func (p Priority) String() string {
	if !p.IsSet() {
		return ""
	}
	return "(" + p.Letter() + ")"
}

// Less orders letters before none and A before Z.
func (p Priority) Less(other Priority) bool {
	return p.rank() < other.rank()
}

func (p Priority) rank() int {
	if !p.IsSet() {
		return 'Z' + 1
	}
	return int(p)
}

func (p Priority) MarshalText() ([]byte, error) {
	return []byte(p.Letter()), nil
}

func (p *Priority) UnmarshalText(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "" {
		*p = PriorityNone
		return nil
	}
	parsed := ParsePriority(s)
	if !parsed.IsSet() {
		return fmt.Errorf("invalid priority %q", s)
	}
	*p = parsed
	return nil
}

// isPriorityToken reports whether word has the "(X)" shape. The letter itself
// is validated by ParsePriority.
func isPriorityToken(word string) bool {
	return len(word) == 3 && word[0] == '(' && word[2] == ')'
}
