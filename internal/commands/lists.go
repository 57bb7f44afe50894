package commands

import (
	"context"
	"flag"
	"io"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd implements the lists command.
// Prints the Google Tasks lists that export can target.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Print Google Tasks lists" }
func (c *ListsCmd) Usage() string     { return "lists" }
func (c *ListsCmd) Scope() Scope      { return ScopeAny }
func (c *ListsCmd) NeedsAuth() bool   { return true }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	lists, err := env.Service.ListLists(ctx)
	if err != nil {
		output.Error(errOut, "backend error: %v", err)
		return exitcode.BackendError
	}

	for _, list := range lists {
		output.FormatListName(out, list)
	}

	return exitcode.Success
}
