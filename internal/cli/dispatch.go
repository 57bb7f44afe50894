// Package cli parses the command line and dispatches commands, both at the
// top level and for each line of a session.
package cli

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"smarttodo/internal/commands"
	"smarttodo/internal/config"
	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/service"
	"smarttodo/internal/tasklist"
)

// DefaultCommand runs when no command is given.
const DefaultCommand = "shell"

// ServiceFactory creates a Service from config.
// Used to inject the backend during dispatch.
type ServiceFactory func(ctx context.Context, cfg *config.Config) (service.Service, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  ServiceFactory

	// Interactive is copied into the config of every run.
	Interactive bool

	svc service.Service // created on first use
}

// NewDispatcher creates a new dispatcher with the given registry and service factory.
func NewDispatcher(registry *commands.Registry, factory ServiceFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Every run starts with an empty task list.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) == 0 {
		args = []string{DefaultCommand}
	}

	cmdName := args[0]

	// Flags require a command
	if strings.HasPrefix(cmdName, "-") {
		output.Error(errOut, "unknown command: %s", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		output.Error(errOut, "unknown command: %s", cmdName)
		return exitcode.UserError
	}
	if cmd.Scope() == commands.ScopeSession {
		output.Error(errOut, "%s is only available inside a session (run: smarttodo)", cmdName)
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configDir string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.BoolVar(&quiet, "quiet", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	cmd.RegisterFlags(fs)

	if err := fs.Parse(args[1:]); err != nil {
		reportFlagError(errOut, err)
		return exitcode.UserError
	}

	// A leftover positional starting with - should have been a flag
	positionalArgs := fs.Args()
	if len(positionalArgs) > 0 && strings.HasPrefix(positionalArgs[0], "-") {
		output.Error(errOut, "unknown flag: %s", positionalArgs[0])
		return exitcode.UserError
	}

	cfg, err := config.New(configDir)
	if err != nil {
		output.Error(errOut, "%v", err)
		return exitcode.UserError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	cfg.Interactive = d.Interactive

	logger := newLogger(errOut, debug).With("session", uuid.NewString())

	if err := cfg.LoadSettings(); err != nil {
		output.Error(errOut, "%v", err)
		return exitcode.UserError
	}
	if cfg.Settings.Color != nil {
		output.SetColor(*cfg.Settings.Color)
	}
	logger.Debug("settings loaded", "path", cfg.SettingsPath(), "algorithm", cfg.Settings.DefaultAlgorithm)

	env := &commands.Env{
		Config: cfg,
		Tasks:  tasklist.New(),
		In:     bufio.NewReader(in),
		Log:    logger,
	}
	env.Exec = func(ctx context.Context, args []string, out, errOut io.Writer) int {
		return d.exec(ctx, env, args, out, errOut)
	}

	return d.runCommand(ctx, env, cmd, positionalArgs, out, errOut)
}

// exec dispatches one session line against env's task list.
func (d *Dispatcher) exec(ctx context.Context, env *commands.Env, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return exitcode.Success
	}

	cmdName := args[0]
	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		output.Error(errOut, "unknown command: %s (try: help)", cmdName)
		return exitcode.UserError
	}
	if cmd.Scope() == commands.ScopeTop {
		output.Error(errOut, "%s is not available inside a session", cmdName)
		return exitcode.UserError
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)

	// Positionals may start with - here (negative indexes after --)
	if err := fs.Parse(args[1:]); err != nil {
		reportFlagError(errOut, err)
		return exitcode.UserError
	}

	env.Log.Debug("dispatch", "command", cmd.Name(), "args", fs.Args())
	session := *env
	session.InSession = true
	return d.runCommand(ctx, &session, cmd, fs.Args(), out, errOut)
}

func (d *Dispatcher) runCommand(ctx context.Context, env *commands.Env, cmd commands.Command, args []string, out, errOut io.Writer) int {
	if !cmd.NeedsAuth() {
		return cmd.Run(ctx, env, args, out, errOut)
	}

	svc, code := d.service(ctx, env, errOut)
	if code != exitcode.Success {
		return code
	}

	withSvc := *env
	withSvc.Service = svc
	return cmd.Run(ctx, &withSvc, args, out, errOut)
}

// service returns the backend, creating it on first use.
func (d *Dispatcher) service(ctx context.Context, env *commands.Env, errOut io.Writer) (service.Service, int) {
	if d.svc != nil {
		return d.svc, exitcode.Success
	}

	cfg := env.Config
	if d.factory == nil {
		// No backend configured; report what is missing
		if !cfg.HasOAuthClient() {
			output.Error(errOut, "oauth_client.json not found in %s", cfg.Dir)
			return nil, exitcode.AuthError
		}
		output.Error(errOut, "not logged in (run: smarttodo login)")
		return nil, exitcode.AuthError
	}

	svc, err := d.factory(ctx, cfg)
	if err != nil {
		if strings.Contains(err.Error(), "token") || strings.Contains(err.Error(), "auth") {
			output.Error(errOut, "auth error: %v", err)
			return nil, exitcode.AuthError
		}
		output.Error(errOut, "backend error: %v", err)
		return nil, exitcode.BackendError
	}
	env.Log.Debug("service created")

	d.svc = svc
	return svc, exitcode.Success
}

// reportFlagError prints a flag parsing error in the CLI's own wording.
func reportFlagError(errOut io.Writer, err error) {
	errStr := err.Error()

	if strings.Contains(errStr, "needs a value") || strings.Contains(errStr, "flag needs an argument") {
		parts := strings.Split(errStr, ":")
		flagPart := strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			flagPart = strings.TrimSpace(parts[len(parts)-1])
		}
		output.Error(errOut, "flag needs an argument: %s", flagPart)
		return
	}

	if strings.HasPrefix(errStr, "flag provided but not defined:") {
		output.Error(errOut, "unknown flag: %s", strings.TrimPrefix(errStr, "flag provided but not defined: "))
		return
	}

	output.Error(errOut, "%s", errStr)
}

// newLogger returns a text logger on w when debug is set, else a logger that
// discards everything.
func newLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
