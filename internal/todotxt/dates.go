package todotxt

import (
	"strings"
	"time"
)

// Clock supplies "today". Production code passes time.Now; tests pin a date.
type Clock func() time.Time

var weekdayKeywords = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
	"weekend": time.Saturday,
}

// ResolveRelativeDate turns a scheduling keyword into an ISO date relative to
// reference. Weekday names resolve to the next such day strictly after
// reference. Unknown input is returned unchanged.
func ResolveRelativeDate(reference time.Time, keyword string) string {
	switch key := strings.ToLower(strings.TrimSpace(keyword)); key {
	case "today":
		return reference.Format(DateLayout)
	case "tomorrow":
		return reference.AddDate(0, 0, 1).Format(DateLayout)
	default:
		day, ok := weekdayKeywords[key]
		if !ok {
			return keyword
		}
		return nextWeekday(reference, day).Format(DateLayout)
	}
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	ahead := (int(day) - int(from.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return from.AddDate(0, 0, ahead)
}
