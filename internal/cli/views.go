package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/amirbrooks/tasker-todotxt/internal/store"
	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
	"github.com/amirbrooks/tasker-todotxt/internal/view"
)

func cmdList(a *app, lists *store.Lists, args []string) error {
	if a.gf.JSON {
		return a.writeTasksJSON(filter(lists.Open, args))
	}
	return a.write(a.render.List(lists.Open, args))
}

func cmdListPriority(a *app, lists *store.Lists, args []string) error {
	if a.gf.JSON {
		var out []todotxt.Task
		for _, t := range todotxt.SortByPriority(filter(lists.Open, args)) {
			if t.Priority.IsSet() {
				out = append(out, t)
			}
		}
		return a.writeTasksJSON(out)
	}
	return a.write(a.render.ListPriority(lists.Open, args))
}

func cmdListDone(a *app, lists *store.Lists, args []string) error {
	if a.gf.JSON {
		return a.writeTasksJSON(filter(lists.Done, args))
	}
	return a.write(a.render.ListDone(lists.Done, args))
}

func cmdNoDate(a *app, lists *store.Lists, args []string) error {
	if a.gf.JSON {
		var out []todotxt.Task
		for _, t := range filter(lists.Open, args) {
			if !t.IsScheduled() {
				out = append(out, t)
			}
		}
		return a.writeTasksJSON(out)
	}
	return a.write(a.render.NoDate(lists.Open, args))
}

func cmdProjectless(a *app, lists *store.Lists, args []string) error {
	return untagged(a, lists, view.Projects, args)
}

func cmdContextless(a *app, lists *store.Lists, args []string) error {
	return untagged(a, lists, view.Contexts, args)
}

func untagged(a *app, lists *store.Lists, kind view.TagKind, args []string) error {
	if a.gf.JSON {
		return a.writeTasksJSON(view.Untagged(filter(lists.Open, args), kind))
	}
	return a.write(a.render.Untagged(lists.Open, kind, args))
}

func cmdDoneSummary(a *app, lists *store.Lists, args []string) error {
	days, filters, err := leadingDays(args, a.cfg.SummaryDays)
	if err != nil {
		return err
	}
	out, err := a.render.DoneSummary(lists.Done, a.today(), days, filters)
	if err != nil {
		return err
	}
	return a.write(out)
}

func cmdDue(a *app, lists *store.Lists, args []string) error {
	days, filters, err := leadingDays(args, a.cfg.DueDays)
	if err != nil {
		return err
	}
	out, err := a.render.Due(lists.Open, a.today(), days, filters)
	if err != nil {
		return err
	}
	return a.write(out)
}

func cmdProjects(a *app, lists *store.Lists, args []string) error {
	return tags(a, lists, view.Projects, args)
}

func cmdContexts(a *app, lists *store.Lists, args []string) error {
	return tags(a, lists, view.Contexts, args)
}

func tags(a *app, lists *store.Lists, kind view.TagKind, args []string) error {
	tasks := filter(lists.Open, args)
	if a.gf.JSON {
		return a.writeJSON(map[string]any{"tasks": len(tasks), "tags": view.CountTags(tasks, kind)})
	}
	return a.write(a.render.Tags(tasks, kind))
}

func cmdLinks(a *app, lists *store.Lists, args []string) error {
	if a.gf.JSON {
		links := view.CollectLinks(filter(lists.Open, args))
		if links == nil {
			links = []view.Link{}
		}
		return a.writeJSON(map[string]any{"links": links})
	}
	return a.write(a.render.Links(lists.Open, args))
}

func cmdExport(a *app, lists *store.Lists, args []string) error {
	args = reorderFlags(args, map[string]bool{"--format": true, "-format": true})
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	format := fs.String("format", a.cfg.ExportFormat, "json|ndjson|yaml")
	toStdout := fs.Bool("stdout", false, "write to stdout instead of a file")
	if err := fs.Parse(args); err != nil {
		return usagef("export: %v", err)
	}
	f, err := store.ParseFormat(*format)
	if err != nil {
		return err
	}

	which := "open"
	if fs.NArg() > 1 {
		return usagef("export takes at most one of open, done, all")
	}
	if fs.NArg() == 1 {
		which = fs.Arg(0)
	}
	var tasks []todotxt.Task
	switch which {
	case "open":
		tasks = lists.Open
	case "done":
		tasks = lists.Done
	case "all":
		tasks = append(append([]todotxt.Task{}, lists.Open...), lists.Done...)
	default:
		return usagef("export: unknown list %q (want open, done or all)", which)
	}

	if *toStdout {
		return store.Encode(a.env.Stdout, f, tasks)
	}
	path, err := store.Export(a.cfg.ExportDirOrDefault(), which, f, tasks)
	if err != nil {
		return err
	}
	a.logger.Debug("exported", "path", path, "tasks", len(tasks))
	a.println(fmt.Sprintf("Wrote %s to: %s", f, path))
	return nil
}

// leadingDays takes an optional day count from the first argument. A count
// must be positive.
func leadingDays(args []string, def int) (int, []string, error) {
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			if n <= 0 {
				return 0, nil, usagef("day count must be positive, got %d", n)
			}
			return n, args[1:], nil
		}
	}
	return def, args, nil
}

func filter(l todotxt.List, args []string) []todotxt.Task {
	pos, neg := todotxt.SplitFilters(args)
	return l.Filter(pos, neg)
}

func (a *app) write(s string) error {
	_, err := io.WriteString(a.env.Stdout, s)
	return err
}

func (a *app) writeTasksJSON(tasks []todotxt.Task) error {
	return store.Encode(a.env.Stdout, store.FormatJSON, tasks)
}

func (a *app) writeJSON(payload any) error {
	enc := json.NewEncoder(a.env.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
