package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/amirbrooks/tasker-todotxt/internal/config"
	"github.com/amirbrooks/tasker-todotxt/internal/logging"
	"github.com/amirbrooks/tasker-todotxt/internal/store"
	"github.com/amirbrooks/tasker-todotxt/internal/todotxt"
	"github.com/amirbrooks/tasker-todotxt/internal/view"
)

// Exit codes
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitNotFound = 3
	ExitData     = 4
	ExitInternal = 10
)

var errUsage = errors.New("usage")

type GlobalFlags struct {
	TodoFile      string
	DoneFile      string
	Config        string
	AutoArchive   bool
	NoAutoArchive bool
	NoColour      bool
	JSON          bool
	Quiet         bool
	Verbose       bool
}

// Env is the process surface a command may touch.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Now    todotxt.Clock
}

type app struct {
	env    Env
	gf     GlobalFlags
	cfg    *config.Loaded
	logger *log.Logger
	render view.Renderer
}

func (a *app) today() time.Time {
	return a.env.Now()
}

func (a *app) notify(msg string, t todotxt.Task) {
	if a.gf.Quiet {
		return
	}
	fmt.Fprintf(a.env.Stdout, "%s: %s\n", msg, a.render.Line(t, t.Position))
}

func (a *app) println(args ...any) {
	if a.gf.Quiet {
		return
	}
	fmt.Fprintln(a.env.Stdout, args...)
}

func Run(args []string) int {
	return RunWith(args, Env{Stdout: os.Stdout, Stderr: os.Stderr, Now: time.Now})
}

func RunWith(args []string, env Env) int {
	gf, rest, err := extractGlobalFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err.Error())
		return ExitUsage
	}

	if len(rest) == 0 {
		printHelp(env.Stderr)
		return ExitUsage
	}

	name := rest[0]
	cmdArgs := rest[1:]
	switch name {
	case "help", "h", "--help", "-h":
		printHelp(env.Stdout)
		return ExitOK
	}

	a, err := newApp(env, gf)
	if err != nil {
		fmt.Fprintln(env.Stderr, "t:", err)
		return exitCode(err)
	}

	if name == "config" || name == "cfg" {
		return a.finish("config", cmdConfig(a, cmdArgs))
	}

	cmd, ok := lookupCommand(name)
	if !ok {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", name)
		printHelp(env.Stderr)
		return ExitUsage
	}
	a.logger.Debug("command", "name", cmd.name, "args", len(cmdArgs))
	return a.finish(cmd.name, a.execute(cmd, cmdArgs))
}

func newApp(env Env, gf GlobalFlags) (*app, error) {
	cfg, err := config.Load(gf.Config)
	if err != nil {
		return nil, err
	}
	overrides := [][2]string{}
	if gf.TodoFile != "" {
		overrides = append(overrides, [2]string{"todo_file", gf.TodoFile})
	}
	if gf.DoneFile != "" {
		overrides = append(overrides, [2]string{"done_file", gf.DoneFile})
	}
	if gf.AutoArchive {
		overrides = append(overrides, [2]string{"auto_archive", "true"})
	}
	if gf.NoAutoArchive {
		overrides = append(overrides, [2]string{"auto_archive", "false"})
	}
	if gf.NoColour {
		overrides = append(overrides, [2]string{"colour", "false"})
	}
	if gf.Verbose {
		overrides = append(overrides, [2]string{"log_level", "debug"})
	}
	if gf.Quiet {
		overrides = append(overrides, [2]string{"log_level", "error"})
	}
	for _, kv := range overrides {
		if err := cfg.Override(kv[0], kv[1]); err != nil {
			return nil, err
		}
	}
	return &app{
		env:    env,
		gf:     gf,
		cfg:    cfg,
		logger: logging.New(logging.Options{Level: cfg.LogLevel, Writer: env.Stderr}),
		render: view.Renderer{Colour: cfg.Colour},
	}, nil
}

// execute loads both files, runs cmd and, for mutating commands, reconciles
// and saves. Nothing is written when the command fails.
func (a *app) execute(cmd command, args []string) error {
	ws, err := store.Open(a.cfg.TodoFile, a.cfg.DoneFile, a.logger)
	if err != nil {
		return err
	}
	lists, err := ws.Load()
	if err != nil {
		return err
	}
	openAtStart, doneAtStart := len(lists.Open), len(lists.Done)

	if err := cmd.run(a, lists, args); err != nil {
		return err
	}
	if !cmd.mutates {
		return nil
	}

	if a.cfg.AutoArchive && cmd.name != "archive" {
		res := todotxt.Reconcile(&lists.Open, &lists.Done)
		if res.Moved() {
			a.logger.Debug("auto-archive", "archived", res.Archived, "restored", res.Restored)
		}
	}
	if err := ws.Save(lists); err != nil {
		return err
	}

	if openAtStart != 0 && len(lists.Open) == 0 {
		a.println("TODOFILE is now empty")
	}
	if doneAtStart != 0 && len(lists.Done) == 0 {
		a.println("DONEFILE is now empty")
	}
	return nil
}

func (a *app) finish(name string, err error) int {
	if err == nil {
		return ExitOK
	}
	fmt.Fprintf(a.env.Stderr, "%s: %v\n", name, err)
	return exitCode(err)
}

func exitCode(err error) int {
	var pe *todotxt.ParseError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errUsage),
		errors.Is(err, todotxt.ErrMissingArgument),
		errors.Is(err, todotxt.ErrInvalidArgument),
		errors.Is(err, config.ErrInvalid),
		errors.Is(err, store.ErrInvalid):
		return ExitUsage
	case errors.Is(err, todotxt.ErrIndexOutOfRange):
		return ExitNotFound
	case errors.As(err, &pe), errors.Is(err, todotxt.ErrMalformedDate):
		return ExitData
	default:
		return ExitInternal
	}
}

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

func printHelp(w io.Writer) {
	fmt.Fprint(w, `t - todo.txt task tracker

Usage:
  t [global flags] <command> [args]

Files are TODOFILE and DONEFILE (config keys todo_file and done_file), both
in todo.txt syntax. Done tasks are moved to DONEFILE after every change
unless auto-archive is off (T_DONT_AUTOARCHIVE, --no-autoarchive).

Global flags:
  --todo-file <path>   Override TODOFILE
  --done-file <path>   Override DONEFILE
  --config <path>      Extra config file (also T_CONFIG)
  -a, --autoarchive    Force auto-archive on
  --no-autoarchive     Turn auto-archive off
  --no-colour          Plain output (also T_NO_COLOUR=1)
  --json               List views print JSON
  --quiet
  --verbose

Commands:
  add|a TEXT...                 Add a task
  append|app IDX TEXT...        Append text to a task
  prepend|pre IDX TEXT...       Prepend text to a task
  remove|rm|delete|del IDX...   Remove tasks
  do IDX...                     Mark tasks done
  undo [IDX...]                 Move done tasks back (default: last done)
  pri IDX LETTER                Set priority
  depri IDX...                  Clear priority
  schedule DATE IDX...          Set due date (today, tomorrow, weekend, mon..sun, YYYY-MM-DD)
  unschedule IDX...             Clear due date
  today IDX...                  Schedule for today
  list|ls [FILTER...]           Open tasks
  listpriority|lsp [FILTER...]  Prioritised open tasks
  listdone|lsd [FILTER...]      Done tasks
  donesummary|ds [N] [FILTER...]
  due [N] [FILTER...]           Overdue and due within N days
  nodate|nd [FILTER...]         Tasks without a due date
  projectless|np [FILTER...]    Tasks without a project
  contextless|nc [FILTER...]    Tasks without a context
  projects | contexts [FILTER...]  Tag counts
  links [FILTER...]             Markdown links in tasks
  export [--format json|ndjson|yaml] [--stdout] [open|done|all]
  archive                       Move done tasks to DONEFILE and back
  config show
  config set <key> <value>
  help|h

Filters match description and tags, case-insensitively. A leading '-'
excludes tasks containing the term.
`)
}

func extractGlobalFlags(args []string) (GlobalFlags, []string, error) {
	// Allow flags anywhere by scanning and stripping known globals.
	gf := GlobalFlags{}
	out := make([]string, 0, len(args))
	skip := 0

	for i := 0; i < len(args); i++ {
		if skip > 0 {
			skip--
			continue
		}
		a := args[i]
		if a == "--" {
			out = append(out, args[i+1:]...)
			break
		}
		key, value, hasValue := strings.Cut(a, "=")
		takeValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", key)
			}
			skip = 1
			return args[i+1], nil
		}
		var err error
		switch key {
		case "--todo-file":
			gf.TodoFile, err = takeValue()
		case "--done-file":
			gf.DoneFile, err = takeValue()
		case "--config":
			gf.Config, err = takeValue()
		case "-a", "--autoarchive":
			gf.AutoArchive = true
		case "--no-autoarchive":
			gf.NoAutoArchive = true
		case "--no-colour", "--no-color":
			gf.NoColour = true
		case "--json":
			gf.JSON = true
		case "--quiet":
			gf.Quiet = true
		case "--verbose":
			gf.Verbose = true
		default:
			out = append(out, a)
		}
		if err != nil {
			return gf, nil, err
		}
	}

	if gf.AutoArchive && gf.NoAutoArchive {
		return gf, nil, errors.New("--autoarchive and --no-autoarchive are mutually exclusive")
	}
	if gf.Quiet && gf.Verbose {
		return gf, nil, errors.New("--quiet and --verbose are mutually exclusive")
	}
	return gf, out, nil
}

func reorderFlags(args []string, takesValue map[string]bool) []string {
	if len(args) == 0 {
		return args
	}
	var flags []string
	var rest []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			if i+1 < len(args) {
				rest = append(rest, args[i+1:]...)
			}
			break
		}
		if strings.HasPrefix(a, "-") {
			flags = append(flags, a)
			if takesValue[a] && !strings.Contains(a, "=") {
				if i+1 < len(args) {
					flags = append(flags, args[i+1])
					i++
				}
			}
			continue
		}
		rest = append(rest, a)
	}
	return append(flags, rest...)
}
