package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Display tasks" }
func (c *ListCmd) Usage() string     { return "list" }
func (c *ListCmd) Scope() Scope      { return ScopeSession }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		output.Error(errOut, "unexpected argument: %s", args[0])
		return exitcode.UserError
	}

	entries := env.Tasks.Snapshot()
	if len(entries) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
		return exitcode.Success
	}

	output.FormatTaskList(out, entries)
	return exitcode.Success
}
