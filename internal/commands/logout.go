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
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string     { return "smarttodo logout [common flags]" }
func (c *LogoutCmd) Scope() Scope      { return ScopeTop }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	cfg := env.Config

	// oauth_client.json is kept so that login can run again
	removed, err := cfg.RemoveToken()
	if err != nil {
		output.Error(errOut, "failed to remove token: %v", err)
		return exitcode.AuthError
	}
	if !removed {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}
	env.Log.Debug("token removed", "path", cfg.TokenPath())

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
