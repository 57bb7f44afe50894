package commands

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/report"
)

func init() {
	Register(&ReportCmd{})
}

// ReportCmd implements the report command.
// It writes the current task list as text, CSV, JSON or PDF.
type ReportCmd struct {
	format string
	path   string
}

// SetFormat sets the --format flag (for testing).
func (c *ReportCmd) SetFormat(format string) {
	c.format = format
}

// SetOut sets the --out flag (for testing).
func (c *ReportCmd) SetOut(path string) {
	c.path = path
}

func (c *ReportCmd) Name() string      { return "report" }
func (c *ReportCmd) Aliases() []string { return nil }
func (c *ReportCmd) Synopsis() string  { return "Write the task list as text, csv, json or pdf" }
func (c *ReportCmd) Usage() string     { return "report [--format <fmt>] [--out <path>]" }
func (c *ReportCmd) Scope() Scope      { return ScopeSession }
func (c *ReportCmd) NeedsAuth() bool   { return false }

func (c *ReportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.path, "out", "", "")
	fs.StringVar(&c.path, "o", "", "")
}

func (c *ReportCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		output.Error(errOut, "unexpected argument: %s", args[0])
		return exitcode.UserError
	}

	format := strings.ToLower(strings.TrimSpace(c.format))
	if format == "" && c.path != "" {
		format = report.FormatFromPath(c.path)
	}
	if format == "pdf" && c.path == "" {
		output.Error(errOut, "pdf reports need --out <path>")
		return exitcode.UserError
	}

	entries := env.Tasks.Snapshot()

	// Rendered in full before anything at the target path is touched
	var buf bytes.Buffer
	if err := report.Render(&buf, format, entries); err != nil {
		output.Error(errOut, "%v", err)
		return exitcode.UserError
	}

	if c.path == "" {
		out.Write(buf.Bytes())
		return exitcode.Success
	}
	if err := os.WriteFile(c.path, buf.Bytes(), 0644); err != nil {
		output.Error(errOut, "%v", err)
		return exitcode.UserError
	}
	env.Log.Debug("report written", "path", c.path, "format", format, "tasks", len(entries))

	if !env.Config.Quiet {
		fmt.Fprintf(out, "wrote %d tasks to %s\n", len(entries), c.path)
	}
	return exitcode.Success
}
