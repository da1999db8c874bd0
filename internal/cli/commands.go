package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirbrooks/tasker-todotxt/internal/store"
	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
)

type command struct {
	name    string
	aliases []string
	// mutates commands are followed by auto-archive and a save.
	mutates bool
	run     func(a *app, lists *store.Lists, args []string) error
}

var commands = []command{
	{name: "add", aliases: []string{"a"}, mutates: true, run: cmdAdd},
	{name: "append", aliases: []string{"app"}, mutates: true, run: cmdAppend},
	{name: "prepend", aliases: []string{"pre"}, mutates: true, run: cmdPrepend},
	{name: "remove", aliases: []string{"rm", "delete", "del"}, mutates: true, run: cmdRemove},
	{name: "do", mutates: true, run: cmdDo},
	{name: "undo", mutates: true, run: cmdUndo},
	{name: "pri", mutates: true, run: cmdPri},
	{name: "depri", mutates: true, run: cmdDepri},
	{name: "schedule", aliases: []string{"sched"}, mutates: true, run: cmdSchedule},
	{name: "unschedule", aliases: []string{"unsched"}, mutates: true, run: cmdUnschedule},
	{name: "today", mutates: true, run: cmdToday},
	{name: "archive", mutates: true, run: cmdArchive},
	{name: "list", aliases: []string{"ls"}, run: cmdList},
	{name: "listpriority", aliases: []string{"lsp"}, run: cmdListPriority},
	{name: "listdone", aliases: []string{"lsd", "done"}, run: cmdListDone},
	{name: "donesummary", aliases: []string{"ds"}, run: cmdDoneSummary},
	{name: "due", run: cmdDue},
	{name: "nodate", aliases: []string{"nd"}, run: cmdNoDate},
	{name: "projectless", aliases: []string{"np"}, run: cmdProjectless},
	{name: "contextless", aliases: []string{"nc"}, run: cmdContextless},
	{name: "projects", run: cmdProjects},
	{name: "contexts", run: cmdContexts},
	{name: "links", run: cmdLinks},
	{name: "export", run: cmdExport},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
		for _, alias := range c.aliases {
			if alias == name {
				return c, true
			}
		}
	}
	return command{}, false
}

func cmdAdd(a *app, lists *store.Lists, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("%w: add needs TEXT", todotxt.ErrMissingArgument)
	}
	t, err := todotxt.Parse(text)
	if err != nil {
		return err
	}
	if t.IsDone() {
		return usagef("add a task, then complete it with 'do'")
	}
	if t.IsScheduled() {
		t.Due = todotxt.ResolveRelativeDate(a.today(), t.Due)
	}
	if err := todotxt.CheckStable(t); err != nil {
		return usagef("add: %v", err)
	}
	lists.Open.Add(t)
	a.notify("ADDED", lists.Open[len(lists.Open)-1])
	return nil
}

func cmdAppend(a *app, lists *store.Lists, args []string) error {
	return editText(a, lists, args, "append", "APPENDED", (*todotxt.Task).AppendText)
}

func cmdPrepend(a *app, lists *store.Lists, args []string) error {
	return editText(a, lists, args, "prepend", "PREPENDED", (*todotxt.Task).PrependText)
}

func editText(a *app, lists *store.Lists, args []string, verb, msg string, edit func(*todotxt.Task, string)) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: %s needs IDX TEXT", todotxt.ErrMissingArgument, verb)
	}
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(args[1:], " "))
	if text == "" {
		return fmt.Errorf("%w: %s needs TEXT", todotxt.ErrMissingArgument, verb)
	}
	t, err := lists.Open.Get(idx)
	if err != nil {
		return inList(err, "TODOFILE")
	}
	edited := *t
	edited.Projects = append([]string(nil), t.Projects...)
	edited.Contexts = append([]string(nil), t.Contexts...)
	edit(&edited, text)
	if edited.Due != t.Due {
		edited.Due = todotxt.ResolveRelativeDate(a.today(), edited.Due)
	}
	if err := todotxt.CheckStable(edited); err != nil {
		return usagef("%s: %v", verb, err)
	}
	*t = edited
	a.notify(msg, *t)
	return nil
}

func cmdRemove(a *app, lists *store.Lists, args []string) error {
	idxs, err := todotxt.ParseIndices(args)
	if err != nil {
		return err
	}
	removed, err := lists.Open.Remove(idxs)
	if err != nil {
		return inList(err, "TODOFILE")
	}
	for _, t := range removed {
		a.notify("REMOVED", t)
	}
	return nil
}

func cmdDo(a *app, lists *store.Lists, args []string) error {
	policy := a.cfg.DonePolicy()
	return applyEach(a, lists.Open, "TODOFILE", args, "DONE", func(t *todotxt.Task) {
		t.MarkDone(a.today(), policy)
	})
}

// cmdUndo reopens done tasks. Without an IDX it reopens the last one.
func cmdUndo(a *app, lists *store.Lists, args []string) error {
	if len(args) == 0 {
		if len(lists.Done) == 0 {
			return inList(&todotxt.IndexError{Index: 0}, "DONEFILE")
		}
		args = []string{fmt.Sprint(len(lists.Done) - 1)}
	}
	return applyEach(a, lists.Done, "DONEFILE", args, "UNDONE", (*todotxt.Task).MarkUndone)
}

func cmdPri(a *app, lists *store.Lists, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: pri needs IDX LETTER", todotxt.ErrMissingArgument)
	}
	p := todotxt.ParsePriority(args[1])
	if !p.IsSet() {
		return usagef("priority must be a letter A-Z, got %q", args[1])
	}
	return applyEach(a, lists.Open, "TODOFILE", args[:1], "PRIORITISED", func(t *todotxt.Task) {
		t.Prioritise(p)
	})
}

func cmdDepri(a *app, lists *store.Lists, args []string) error {
	return applyEach(a, lists.Open, "TODOFILE", args, "DEPRIORITISED", func(t *todotxt.Task) {
		t.Prioritise(todotxt.PriorityNone)
	})
}

func cmdSchedule(a *app, lists *store.Lists, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: schedule needs DATE IDX...", todotxt.ErrMissingArgument)
	}
	return schedule(a, lists, args[0], args[1:])
}

func cmdToday(a *app, lists *store.Lists, args []string) error {
	return schedule(a, lists, "today", args)
}

func schedule(a *app, lists *store.Lists, date string, idxArgs []string) error {
	idxs, err := todotxt.ParseIndices(idxArgs)
	if err != nil {
		return err
	}
	if err := lists.Open.CheckIndices(idxs); err != nil {
		return inList(err, "TODOFILE")
	}
	for _, i := range idxs {
		if err := lists.Open[i].Schedule(a.today(), date); err != nil {
			return err
		}
	}
	for _, i := range idxs {
		a.notify("SCHEDULED", lists.Open[i])
	}
	return nil
}

func cmdUnschedule(a *app, lists *store.Lists, args []string) error {
	return applyEach(a, lists.Open, "TODOFILE", args, "UNSCHEDULED", (*todotxt.Task).Unschedule)
}

func cmdArchive(a *app, lists *store.Lists, args []string) error {
	if len(args) > 0 {
		return usagef("archive takes no arguments")
	}
	res := todotxt.Reconcile(&lists.Open, &lists.Done)
	a.println(fmt.Sprintf("ARCHIVED: %d done, %d restored", res.Archived, res.Restored))
	return nil
}

// applyEach validates every index, then applies fn and reports each task.
func applyEach(a *app, list todotxt.List, name string, args []string, msg string, fn func(*todotxt.Task)) error {
	idxs, err := todotxt.ParseIndices(args)
	if err != nil {
		return err
	}
	if err := list.Apply(idxs, fn); err != nil {
		return inList(err, name)
	}
	for _, i := range idxs {
		a.notify(msg, list[i])
	}
	return nil
}

func parseIndex(arg string) (int, error) {
	idxs, err := todotxt.ParseIndices([]string{arg})
	if err != nil {
		return 0, err
	}
	return idxs[0], nil
}

// inList names the file an index error refers to.
func inList(err error, name string) error {
	var ie *todotxt.IndexError
	if errors.As(err, &ie) && ie.List == "" {
		ie.List = name
	}
	return err
}
