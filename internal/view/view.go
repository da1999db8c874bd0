package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
)

// List renders open tasks in file order.
func (r Renderer) List(open todotxt.List, filters []string) string {
	var b strings.Builder
	r.writeLines(&b, filtered(open, filters))
	return b.String()
}

// ListPriority renders prioritised open tasks, highest priority first.
func (r Renderer) ListPriority(open todotxt.List, filters []string) string {
	var prioritised []todotxt.Task
	for _, t := range filtered(open, filters) {
		if t.Priority.IsSet() {
			prioritised = append(prioritised, t)
		}
	}
	var b strings.Builder
	r.writeLines(&b, todotxt.SortByPriority(prioritised))
	return b.String()
}

func (r Renderer) ListDone(done todotxt.List, filters []string) string {
	var b strings.Builder
	r.writeLines(&b, filtered(done, filters))
	return b.String()
}

// NoDate renders open tasks that have no due date.
func (r Renderer) NoDate(open todotxt.List, filters []string) string {
	var unscheduled []todotxt.Task
	for _, t := range filtered(open, filters) {
		if !t.IsScheduled() {
			unscheduled = append(unscheduled, t)
		}
	}
	var b strings.Builder
	r.writeLines(&b, unscheduled)
	return b.String()
}

// DoneSummary groups tasks completed in the last days days (today included)
// under one heading per completion date, newest first.
func (r Renderer) DoneSummary(done todotxt.List, today time.Time, days int, filters []string) (string, error) {
	byDate := map[string][]todotxt.Task{}
	for _, t := range filtered(done, filters) {
		age, err := t.DaysSinceDone(today)
		if err != nil {
			return "", err
		}
		if age < 0 || age >= days {
			continue
		}
		byDate[t.Completed] = append(byDate[t.Completed], t)
	}
	if len(byDate) == 0 {
		return fmt.Sprintf("Done (%d days) - nothing completed\n", days), nil
	}
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Done (%d days) - %d completed\n\n", days, lenByDate(byDate)))
	for _, d := range dates {
		b.WriteString(r.heading(dateLabel(d)) + "\n")
		for _, t := range byDate[d] {
			b.WriteString("  " + todotxt.SummaryLine(t) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Due renders overdue tasks and then one section per day from today to
// today+days, each ordered by priority.
func (r Renderer) Due(open todotxt.List, today time.Time, days int, filters []string) (string, error) {
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, days)

	var overdue []todotxt.Task
	byDate := map[string][]todotxt.Task{}
	for _, t := range filtered(open, filters) {
		if !t.IsScheduled() {
			continue
		}
		late, err := t.DaysOverdue(start)
		if err != nil {
			return "", err
		}
		switch {
		case late > 0:
			overdue = append(overdue, t)
		case -late <= days:
			byDate[t.Due] = append(byDate[t.Due], t)
		}
	}

	rangeLabel := fmt.Sprintf("%s -> %s", start.Format(todotxt.DateLayout), end.Format(todotxt.DateLayout))
	if lenByDate(byDate) == 0 && len(overdue) == 0 {
		return fmt.Sprintf("Due (%d days) - %s - nothing due, nothing overdue\n", days, rangeLabel), nil
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Due (%d days) - %s - due %d, overdue %d\n\n", days, rangeLabel, lenByDate(byDate), len(overdue)))

	if len(overdue) > 0 {
		b.WriteString(r.paint(overdueStyle, "Overdue") + "\n")
		r.writeLines(&b, todotxt.SortByDue(overdue))
		b.WriteString("\n")
	}
	for i := 0; i <= days; i++ {
		key := start.AddDate(0, 0, i).Format(todotxt.DateLayout)
		items := byDate[key]
		if len(items) == 0 {
			continue
		}
		b.WriteString(r.heading(dateLabel(key)) + "\n")
		r.writeLines(&b, todotxt.SortByPriority(items))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// TagKind selects which tag list Tags counts.
type TagKind int

const (
	Projects TagKind = iota
	Contexts
)

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// CountTags counts each project or context across tasks, most used first,
// ties broken by name.
func CountTags(tasks []todotxt.Task, kind TagKind) []TagCount {
	counts := map[string]int{}
	for _, t := range tasks {
		tags := t.Projects
		if kind == Contexts {
			tags = t.Contexts
		}
		for _, tag := range tags {
			counts[tag]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func (r Renderer) Tags(tasks []todotxt.Task, kind TagKind) string {
	marker := todotxt.ProjectMarker
	if kind == Contexts {
		marker = todotxt.ContextMarker
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%d tasks\n", len(tasks)))
	for _, c := range CountTags(tasks, kind) {
		b.WriteString(fmt.Sprintf("%5d %s\n", c.Count, r.paint(tagStyle, string(marker)+c.Tag)))
	}
	return b.String()
}

// Untagged returns the tasks carrying no tag of the given kind.
func Untagged(tasks []todotxt.Task, kind TagKind) []todotxt.Task {
	var out []todotxt.Task
	for _, t := range tasks {
		tags := t.Projects
		if kind == Contexts {
			tags = t.Contexts
		}
		if len(tags) == 0 {
			out = append(out, t)
		}
	}
	return out
}

// Untagged renders open tasks without a project (or context).
func (r Renderer) Untagged(open todotxt.List, kind TagKind, filters []string) string {
	var b strings.Builder
	r.writeLines(&b, Untagged(filtered(open, filters), kind))
	return b.String()
}

type Link struct {
	Position int    `json:"position"`
	URL      string `json:"url"`
}

// CollectLinks returns every markdown link target in tasks, in task order.
func CollectLinks(tasks []todotxt.Task) []Link {
	var out []Link
	for _, t := range tasks {
		for _, url := range t.Links() {
			out = append(out, Link{Position: t.Position, URL: url})
		}
	}
	return out
}

// Links lists every markdown link target with the index of its task.
func (r Renderer) Links(tasks todotxt.List, filters []string) string {
	var b strings.Builder
	for _, l := range CollectLinks(filtered(tasks, filters)) {
		b.WriteString(padIndex(l.Position) + " " + l.URL + "\n")
	}
	return b.String()
}

func (r Renderer) writeLines(b *strings.Builder, tasks []todotxt.Task) {
	for _, t := range tasks {
		b.WriteString(r.Line(t, t.Position) + "\n")
	}
}

func filtered(l todotxt.List, filters []string) []todotxt.Task {
	pos, neg := todotxt.SplitFilters(filters)
	return l.Filter(pos, neg)
}

func lenByDate(byDate map[string][]todotxt.Task) int {
	n := 0
	for _, list := range byDate {
		n += len(list)
	}
	return n
}

func dateLabel(iso string) string {
	d, err := time.Parse(todotxt.DateLayout, iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%s (%s)", iso, d.Weekday().String()[:3])
}

func padIndex(i int) string {
	return fmt.Sprintf("%3d", i)
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
