package todotxt

// ArchiveResult counts the tasks moved by Reconcile.
type ArchiveResult struct {
	Archived int // open -> done
	Restored int // done -> open
}

func (r ArchiveResult) Moved() bool {
	return r.Archived > 0 || r.Restored > 0
}

// Reconcile moves completed tasks from open to done and incomplete tasks from
// done back to open. Moved tasks are appended in their original relative
// order and both lists are reindexed. A second call moves nothing.
func Reconcile(open, done *List) ArchiveResult {
	var toDone, toOpen []int
	for i := range *open {
		if (*open)[i].IsDone() {
			toDone = append(toDone, i)
		}
	}
	for i := range *done {
		if !(*done)[i].IsDone() {
			toOpen = append(toOpen, i)
		}
	}

	for _, i := range toDone {
		*done = append(*done, (*open)[i])
	}
	for _, i := range toOpen {
		*open = append(*open, (*done)[i])
	}

	removeDescending(open, toDone)
	removeDescending(done, toOpen)
	open.Reindex()
	done.Reindex()
	return ArchiveResult{Archived: len(toDone), Restored: len(toOpen)}
}

// removeDescending deletes ascending positions back to front so earlier
// positions stay valid.
func removeDescending(l *List, ascending []int) {
	for k := len(ascending) - 1; k >= 0; k-- {
		i := ascending[k]
		*l = append((*l)[:i], (*l)[i+1:]...)
	}
}
