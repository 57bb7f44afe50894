package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
)

// Prompt is printed before each line in an interactive session.
const Prompt = "todo> "

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the shell command, the default when no command is given.
// Each input line is one session command.
type ShellCmd struct {
	file   string
	strict bool
}

// SetFile sets the --file flag (for testing).
func (c *ShellCmd) SetFile(path string) {
	c.file = path
}

// SetStrict sets the --strict flag (for testing).
func (c *ShellCmd) SetStrict(strict bool) {
	c.strict = strict
}

func (c *ShellCmd) Name() string      { return "shell" }
func (c *ShellCmd) Aliases() []string { return nil }
func (c *ShellCmd) Synopsis() string  { return "Start an interactive session" }
func (c *ShellCmd) Usage() string     { return "smarttodo shell [--file <path>] [--strict]" }
func (c *ShellCmd) Scope() Scope      { return ScopeTop }
func (c *ShellCmd) NeedsAuth() bool   { return false }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "file", "", "")
	fs.StringVar(&c.file, "f", "", "")
	fs.BoolVar(&c.strict, "strict", false, "")
}

func (c *ShellCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		output.Error(errOut, "unexpected argument: %s", args[0])
		return exitcode.UserError
	}

	in := env.In
	interactive := env.Config.Interactive
	if c.file != "" {
		f, err := os.Open(c.file)
		if err != nil {
			output.Error(errOut, "%v", err)
			return exitcode.UserError
		}
		defer f.Close()
		in = bufio.NewReader(f)
		interactive = false
	}

	if interactive && !env.Config.Quiet {
		fmt.Fprintln(out, "Type 'help' for commands, 'quit' to exit.")
	}

	lineNo := 0
	for {
		if interactive {
			fmt.Fprint(out, Prompt)
		}

		line, err := readLineContext(ctx, in)
		if err == io.EOF || ctx.Err() != nil {
			if interactive {
				fmt.Fprintln(out)
			}
			return exitcode.Success
		}
		if err != nil {
			output.Error(errOut, "failed to read input: %v", err)
			return exitcode.UserError
		}
		lineNo++

		fields := strings.Fields(line)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return exitcode.Success
		}

		env.Log.Debug("session line", "line", lineNo, "command", fields[0])
		if code := env.Exec(ctx, fields, out, errOut); code != exitcode.Success && c.strict {
			return code
		}
	}
}
