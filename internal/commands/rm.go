package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/tasklist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Remove a task by index" }
func (c *RmCmd) Usage() string     { return "rm <index>" }
func (c *RmCmd) Scope() Scope      { return ScopeSession }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	index, err := ParseIndex(args)
	if err != nil {
		output.Error(errOut, "%v", err)
		return exitcode.UserError
	}

	if err := env.Tasks.RemoveAt(index); err != nil {
		switch {
		case errors.Is(err, tasklist.ErrEmptyList):
			output.Error(errOut, "no tasks to delete")
		case errors.Is(err, tasklist.ErrInvalidIndex):
			output.Error(errOut, "invalid index: %d", index)
		default:
			output.Error(errOut, "%v", err)
		}
		return exitcode.UserError
	}
	env.Log.Debug("task removed", "index", index, "len", env.Tasks.Len())

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
