package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/tasklist"
)

const menuText = `
Smart To-Do List Manager
1. Add Task
2. Delete Task
3. Display Tasks
4. Bubble Sort Tasks
5. Selection Sort Tasks
6. Insertion Sort Tasks
7. Exit
`

// Menu choices.
const (
	menuAdd = iota + 1
	menuDelete
	menuDisplay
	menuBubble
	menuSelection
	menuInsertion
	menuExit
)

func init() {
	Register(&MenuCmd{})
}

// MenuCmd implements the numbered menu.
// Choices are turned into session commands and run through Env.Exec.
type MenuCmd struct{}

func (c *MenuCmd) Name() string      { return "menu" }
func (c *MenuCmd) Aliases() []string { return nil }
func (c *MenuCmd) Synopsis() string  { return "Numbered menu" }
func (c *MenuCmd) Usage() string     { return "smarttodo menu [common flags]" }
func (c *MenuCmd) Scope() Scope      { return ScopeTop }
func (c *MenuCmd) NeedsAuth() bool   { return false }

func (c *MenuCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MenuCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	for ctx.Err() == nil {
		fmt.Fprint(out, menuText)
		line, ok := prompt(ctx, env, out, "Enter your choice: ")
		if !ok {
			return exitcode.Success
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			choice = 0
		}

		switch choice {
		case menuAdd:
			description, ok := prompt(ctx, env, out, "Enter task description: ")
			if !ok {
				return exitcode.Success
			}
			raw, ok := prompt(ctx, env, out, "Enter task priority (higher number = higher priority): ")
			if !ok {
				return exitcode.Success
			}
			priority, err := ParsePriority(raw)
			if err != nil {
				output.Error(errOut, "%v", err)
				continue
			}
			env.Exec(ctx, []string{"add", "--priority", strconv.Itoa(priority), "--", description}, out, errOut)
		case menuDelete:
			raw, ok := prompt(ctx, env, out, "Enter task index to delete: ")
			if !ok {
				return exitcode.Success
			}
			env.Exec(ctx, []string{"rm", "--", strings.TrimSpace(raw)}, out, errOut)
		case menuDisplay:
			env.Exec(ctx, []string{"list"}, out, errOut)
		case menuBubble:
			env.Exec(ctx, []string{"sort", tasklist.Bubble.Key()}, out, errOut)
		case menuSelection:
			env.Exec(ctx, []string{"sort", tasklist.Selection.Key()}, out, errOut)
		case menuInsertion:
			env.Exec(ctx, []string{"sort", tasklist.Insertion.Key()}, out, errOut)
		case menuExit:
			fmt.Fprintln(out, "Exiting program...")
			return exitcode.Success
		default:
			fmt.Fprintln(out, "Invalid choice! Try again.")
		}
	}
	return exitcode.Success
}

// prompt prints label and reads one line. ok is false at end of input or
// on cancellation.
func prompt(ctx context.Context, env *Env, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	line, err := readLineContext(ctx, env.In)
	if err != nil {
		fmt.Fprintln(out)
		return "", false
	}
	return line, true
}
