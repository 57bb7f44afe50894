package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/tasklist"
)

const (
	defaultBenchSeed = 42

	// Generated priorities fall in [1, benchMaxPriority].
	benchMaxPriority = 100
)

func init() {
	Register(&BenchCmd{})
}

// BenchCmd implements the bench command.
// Every algorithm sorts its own clone of the same input.
type BenchCmd struct {
	size    int
	seed    uint64
	current bool
}

// SetSize sets the --size flag (for testing).
func (c *BenchCmd) SetSize(size int) {
	c.size = size
}

// SetSeed sets the --seed flag (for testing).
func (c *BenchCmd) SetSeed(seed uint64) {
	c.seed = seed
}

// SetCurrent sets the --current flag (for testing).
func (c *BenchCmd) SetCurrent(current bool) {
	c.current = current
}

func (c *BenchCmd) Name() string      { return "bench" }
func (c *BenchCmd) Aliases() []string { return nil }
func (c *BenchCmd) Synopsis() string  { return "Compare sort timings" }
func (c *BenchCmd) Usage() string     { return "bench [--size <n>] [--seed <n>] [--current]" }
func (c *BenchCmd) Scope() Scope      { return ScopeAny }
func (c *BenchCmd) NeedsAuth() bool   { return false }

func (c *BenchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.size, "size", 0, "")
	fs.Uint64Var(&c.seed, "seed", defaultBenchSeed, "")
	fs.BoolVar(&c.current, "current", false, "")
}

func (c *BenchCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		output.Error(errOut, "unexpected argument: %s", args[0])
		return exitcode.UserError
	}
	if c.current && !env.InSession {
		output.Error(errOut, "--current is only available inside a session")
		return exitcode.UserError
	}
	if c.size < 0 {
		output.Error(errOut, "invalid size: %d", c.size)
		return exitcode.UserError
	}

	var input *tasklist.TaskList
	if c.current {
		input = env.Tasks
		fmt.Fprintf(out, "Sorting %d session tasks\n", input.Len())
	} else {
		size := c.size
		if size == 0 {
			size = env.Config.Settings.BenchSize
		}
		input = GenerateTasks(size, c.seed)
		output.FormatBenchHeader(out, size, c.seed)
	}

	for _, alg := range tasklist.Algorithms {
		if err := ctx.Err(); err != nil {
			output.Error(errOut, "cancelled")
			return exitcode.Interrupted
		}
		elapsed := input.Clone().Sort(alg)
		env.Log.Debug("bench run", "algorithm", alg.Key(), "len", input.Len(), "elapsed", elapsed)
		output.FormatBenchRow(out, alg, elapsed)
	}
	return exitcode.Success
}

// GenerateTasks builds a list of n tasks with pseudo-random priorities.
// The same seed always yields the same list.
func GenerateTasks(n int, seed uint64) *tasklist.TaskList {
	rng := rand.New(rand.NewPCG(seed, seed))
	l := tasklist.New()
	for i := 0; i < n; i++ {
		l.Append(fmt.Sprintf("task %d", i), rng.IntN(benchMaxPriority)+1)
	}
	return l
}
