package commands

import (
	"context"
	"flag"
	"io"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/tasklist"
)

func init() {
	Register(&SortCmd{})
}

// SortCmd implements the sort command.
type SortCmd struct {
	show bool
}

// SetShow sets the --show flag (for testing).
func (c *SortCmd) SetShow(show bool) {
	c.show = show
}

func (c *SortCmd) Name() string      { return "sort" }
func (c *SortCmd) Aliases() []string { return nil }
func (c *SortCmd) Synopsis() string  { return "Sort tasks by descending priority" }
func (c *SortCmd) Usage() string     { return "sort [--show] [bubble|selection|insertion]" }
func (c *SortCmd) Scope() Scope      { return ScopeSession }
func (c *SortCmd) NeedsAuth() bool   { return false }

func (c *SortCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.show, "show", false, "")
}

func (c *SortCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	var alg tasklist.Algorithm
	var err error
	switch len(args) {
	case 0:
		alg, err = env.Config.Settings.Algorithm()
	case 1:
		alg, err = tasklist.ParseAlgorithm(args[0])
	default:
		output.Error(errOut, "unexpected argument: %s", args[1])
		return exitcode.UserError
	}
	if err != nil {
		output.Error(errOut, "%v", err)
		return exitcode.UserError
	}

	elapsed := env.Tasks.Sort(alg)
	env.Log.Debug("tasks sorted", "algorithm", alg.Key(), "len", env.Tasks.Len(), "elapsed", elapsed)

	if !env.Config.Quiet {
		output.FormatSortReport(out, alg, elapsed)
	}
	if c.show {
		output.FormatTaskList(out, env.Tasks.Snapshot())
	}
	return exitcode.Success
}
