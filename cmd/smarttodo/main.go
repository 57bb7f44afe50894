// Command smarttodo keeps a prioritized to-do list for one session and can
// publish it to Google Tasks.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"smarttodo/internal/backend/googletasks"
	"smarttodo/internal/cli"
	"smarttodo/internal/commands"
	"smarttodo/internal/config"
	"smarttodo/internal/exitcode"
	"smarttodo/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, newService)
	dispatcher.Interactive = term.IsTerminal(int(os.Stdin.Fd()))

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if ctx.Err() != nil {
		code = exitcode.Interrupted
	}
	stop()
	os.Exit(code)
}

func newService(ctx context.Context, cfg *config.Config) (service.Service, error) {
	return googletasks.New(ctx, cfg)
}
