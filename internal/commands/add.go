package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"smarttodo/internal/exitcode"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority int
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"a"} }
func (c *AddCmd) Synopsis() string  { return "Append a task" }
func (c *AddCmd) Usage() string     { return "add [--priority <n>] <description...>" }
func (c *AddCmd) Scope() Scope      { return ScopeSession }
func (c *AddCmd) NeedsAuth() bool   { return false }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.priority, "priority", 0, "")
	fs.IntVar(&c.priority, "p", 0, "")
}

func (c *AddCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	// Description may be empty
	description := strings.Join(args, " ")

	env.Tasks.Append(description, c.priority)
	env.Log.Debug("task appended", "priority", c.priority, "len", env.Tasks.Len())

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
