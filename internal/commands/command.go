// Package commands provides the command interface and implementations.
package commands

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log/slog"

	"smarttodo/internal/config"
	"smarttodo/internal/service"
	"smarttodo/internal/tasklist"
)

// Scope says where a command may be invoked.
type Scope int

const (
	// ScopeAny commands run both from the shell command line and inside a session.
	ScopeAny Scope = iota

	// ScopeTop commands run only from the shell command line.
	ScopeTop

	// ScopeSession commands run only inside a session, where a task list exists.
	ScopeSession
)

// ExecFunc runs one in-session command line (name followed by arguments).
// Returns exit code.
type ExecFunc func(ctx context.Context, args []string, out, errOut io.Writer) int

// Env is the state a command runs against.
type Env struct {
	// Config is always provided (config dir, settings).
	Config *config.Config

	// Tasks is the session's task list.
	Tasks *tasklist.TaskList

	// Service is nil unless the command's NeedsAuth returns true.
	Service service.Service

	// In is the session input, used by interactive commands.
	In *bufio.Reader

	// Log receives debug logging.
	Log *slog.Logger

	// Exec dispatches an in-session command line.
	Exec ExecFunc

	// InSession is true while a command runs from a session line.
	InSession bool
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// Scope returns where the command may be invoked.
	Scope() Scope

	// NeedsAuth returns true if the command requires authentication.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
