// Package view renders task lists for the terminal.
package view

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
)

var (
	priorityAStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	priorityBStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	priorityCStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	tagStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headingStyle   = lipgloss.NewStyle().Bold(true)
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Renderer turns tasks into display lines. With Colour off the output is
// exactly FormatForDisplay.
type Renderer struct {
	Colour bool
}

func (r Renderer) paint(s lipgloss.Style, text string) string {
	if !r.Colour || text == "" {
		return text
	}
	return s.Render(text)
}

func priorityStyle(p todotxt.Priority) (lipgloss.Style, bool) {
	switch p {
	case 'A':
		return priorityAStyle, true
	case 'B':
		return priorityBStyle, true
	case 'C':
		return priorityCStyle, true
	}
	return lipgloss.Style{}, false
}

// Line renders one task with its index. Priorities A to C colour the
// leading part and tags are red.
func (r Renderer) Line(t todotxt.Task, index int) string {
	if !r.Colour {
		return todotxt.FormatForDisplay(t, index)
	}
	lead, tags := todotxt.DisplayParts(t)
	if s, ok := priorityStyle(t.Priority); ok {
		lead = r.paint(s, lead)
	}
	return joinNonEmpty(padIndex(index), lead, r.paint(tagStyle, tags))
}

func (r Renderer) heading(text string) string {
	return r.paint(headingStyle, text)
}
