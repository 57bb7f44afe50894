package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
// It publishes the session's tasks, in their current order, to a remote list.
type ExportCmd struct {
	listName string
	create   bool
	replace  bool
}

// SetListName sets the list name (for testing).
func (c *ExportCmd) SetListName(name string) {
	c.listName = name
}

// SetCreate sets the --create flag (for testing).
func (c *ExportCmd) SetCreate(create bool) {
	c.create = create
}

// SetReplace sets the --replace flag (for testing).
func (c *ExportCmd) SetReplace(replace bool) {
	c.replace = replace
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Publish tasks to Google Tasks" }
func (c *ExportCmd) Usage() string {
	return "export [--list <list-name>] [--create] [--replace]"
}
func (c *ExportCmd) Scope() Scope    { return ScopeSession }
func (c *ExportCmd) NeedsAuth() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.create, "create", false, "")
	fs.BoolVar(&c.replace, "replace", false, "")
}

func (c *ExportCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		output.Error(errOut, "unexpected argument: %s", args[0])
		return exitcode.UserError
	}

	tasks := env.Tasks.Tasks()
	if len(tasks) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
		return exitcode.Success
	}

	svc := env.Service
	listName := strings.TrimSpace(c.listName)
	if listName == "" {
		listName = strings.TrimSpace(env.Config.Settings.ExportList)
	}

	list, code := c.resolveTarget(ctx, svc, listName, errOut)
	if code != exitcode.Success {
		return code
	}
	env.Log.Debug("export target resolved", "list", list.Title, "id", list.ID)

	if c.replace {
		removed, err := clearOpenTasks(ctx, svc, list.ID)
		if err != nil {
			output.Error(errOut, "backend error: %v", err)
			return exitcode.BackendError
		}
		env.Log.Debug("cleared remote list", "removed", removed)
	}

	// Each task goes directly below the previous one, so the session order
	// ends up at the top of the remote list
	previous := ""
	for i, t := range tasks {
		created, err := svc.InsertTask(ctx, list.ID, output.ExportTask(t), previous)
		if err != nil {
			output.Error(errOut, "backend error: exported %d of %d tasks: %v", i, len(tasks), err)
			return exitcode.BackendError
		}
		env.Log.Debug("task exported", "id", created.ID, "title", created.Title)
		previous = created.ID
	}

	if !env.Config.Quiet {
		fmt.Fprintf(out, "exported %d tasks to %s\n", len(tasks), list.Title)
	}
	return exitcode.Success
}

func (c *ExportCmd) resolveTarget(ctx context.Context, svc service.Service, listName string, errOut io.Writer) (service.TaskList, int) {
	if listName == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			output.Error(errOut, "backend error: %v", err)
			return service.TaskList{}, exitcode.BackendError
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, listName)
	if err == nil {
		return list, exitcode.Success
	}

	switch {
	case errors.Is(err, service.ErrListNotFound):
		if !c.create {
			output.Error(errOut, "list not found: %s", listName)
			return service.TaskList{}, exitcode.UserError
		}
		list, err = svc.CreateList(ctx, listName)
		if err != nil {
			output.Error(errOut, "backend error: %v", err)
			return service.TaskList{}, exitcode.BackendError
		}
		return list, exitcode.Success
	case errors.Is(err, service.ErrAmbiguousList):
		output.Error(errOut, "ambiguous list name: %s", listName)
		return service.TaskList{}, exitcode.UserError
	default:
		output.Error(errOut, "backend error: %v", err)
		return service.TaskList{}, exitcode.BackendError
	}
}

// clearOpenTasks deletes every open task in a list and returns how many
// were removed.
func clearOpenTasks(ctx context.Context, svc service.Service, listID string) (int, error) {
	open, err := svc.OpenTasks(ctx, listID)
	if err != nil {
		return 0, err
	}
	for i, t := range open {
		if err := svc.DeleteTask(ctx, listID, t.ID); err != nil {
			return i, err
		}
	}
	return len(open), nil
}
