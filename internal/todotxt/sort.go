package todotxt

import "sort"

// SortByPriority returns a copy of tasks ordered A..Z with unprioritised tasks
// last. Tasks of equal priority keep their input order.
func SortByPriority(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Less(out[j].Priority)
	})
	return out
}

// SortByDue orders scheduled tasks by due date (ISO strings compare
// chronologically), then by priority. Unscheduled tasks go last. Stable.
func SortByDue(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Due, out[j].Due
		if di != dj {
			if di == "" || dj == "" {
				return dj == ""
			}
			return di < dj
		}
		return out[i].Priority.Less(out[j].Priority)
	})
	return out
}
