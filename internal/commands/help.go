package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"smarttodo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return []string{"?"} }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "help" }
func (c *HelpCmd) Scope() Scope      { return ScopeAny }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, usageText)

	fmt.Fprintln(out, "\nSession commands:")
	for _, cmd := range DefaultRegistry.InScope(ScopeSession) {
		fmt.Fprintf(out, "  %-52s%s\n", cmd.Usage(), cmd.Synopsis())
	}
	fmt.Fprintf(out, "  %-52s%s\n", "quit", "Leave the session")

	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const usageText = `Usage:
  smarttodo                                           Start an interactive session
  smarttodo shell [common flags] [--file <path>] [--strict]
  smarttodo menu [common flags]                       Numbered menu
  smarttodo bench [common flags] [--size <n>] [--seed <n>]
  smarttodo lists [common flags]
  smarttodo login [common flags]
  smarttodo logout [common flags]
  smarttodo help
  smarttodo version
`

const commonFlagsText = `
Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
