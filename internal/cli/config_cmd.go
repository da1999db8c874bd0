package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/amirbrooks/tasker-todotxt/internal/config"
)

func cmdConfig(a *app, args []string) error {
	if len(args) == 0 {
		return usagef("config <show|set> ...")
	}
	switch args[0] {
	case "show":
		return cmdConfigShow(a)
	case "set":
		return cmdConfigSet(a, args[1:])
	default:
		return usagef("config <show|set> ..., got %q", args[0])
	}
}

func cmdConfigShow(a *app) error {
	if a.gf.JSON {
		values := map[string]string{}
		for _, key := range config.Keys() {
			v, _ := a.cfg.Get(key)
			values[key] = v
		}
		return a.writeJSON(map[string]any{
			"user_file": a.cfg.UserFile,
			"files":     a.cfg.Files,
			"values":    values,
			"sources":   a.cfg.Sources,
		})
	}
	w := tabwriter.NewWriter(a.env.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
	for _, key := range config.Keys() {
		v, _ := a.cfg.Get(key)
		if key == "export_dir" && v == "" {
			v = a.cfg.ExportDirOrDefault()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", key, v, a.cfg.Sources[key])
	}
	fmt.Fprintf(w, "user_file\t%s\t\n", a.cfg.UserFile)
	return w.Flush()
}

// cmdConfigSet edits the user file only; environment and flags are not persisted.
func cmdConfigSet(a *app, args []string) error {
	if len(args) != 2 {
		return usagef("config set <key> <value>")
	}
	path := a.cfg.UserFile
	if path == "" {
		return fmt.Errorf("config set: no user config directory available")
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := cfg.Set(args[0], args[1]); err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	v, _ := cfg.Get(args[0])
	a.println(fmt.Sprintf("Set %s = %s in %s", args[0], v, path))
	return nil
}
