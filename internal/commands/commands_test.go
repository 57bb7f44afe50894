package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"smarttodo/internal/commands"
	"smarttodo/internal/config"
	"smarttodo/internal/exitcode"
	"smarttodo/internal/output"
	"smarttodo/internal/tasklist"
	"smarttodo/internal/testutil"
)

func TestMain(m *testing.M) {
	output.SetColor(false)
	os.Exit(m.Run())
}

// newEnv builds a session environment with an empty task list.
func newEnv(t *testing.T, svc *testutil.FakeService, quiet bool) *commands.Env {
	t.Helper()

	env := &commands.Env{
		Config: &config.Config{
			Dir:      t.TempDir(),
			Quiet:    quiet,
			Settings: config.DefaultSettings(),
		},
		Tasks: tasklist.New(),
		Log:   slog.New(slog.DiscardHandler),
	}
	if svc != nil {
		env.Service = svc
	}
	return env
}

// runCommand parses args with the command's flags and runs it against env.
func runCommand(t *testing.T, cmd commands.Command, env *commands.Env, args ...string) (stdout, stderr string, code int) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags %v: %v", args, err)
	}

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), env, fs.Args(), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func seed(env *commands.Env) {
	env.Tasks.Append("Write report", 5)
	env.Tasks.Append("Call client", 9)
	env.Tasks.Append("Buy milk", 1)
}

func snapshotDescriptions(env *commands.Env) []string {
	var out []string
	for _, e := range env.Tasks.Snapshot() {
		out = append(out, e.Description)
	}
	return out
}

func assertStrings(t *testing.T, want, got []string) {
	t.Helper()
	if strings.Join(want, "|") != strings.Join(got, "|") || len(want) != len(got) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, newEnv(t, nil, false))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "smarttodo 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, newEnv(t, nil, false))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}

	for _, want := range []string{
		"Usage:",
		"Session commands:",
		"add [--priority <n>] <description...>",
		"rm <index>",
		"sort [--show] [bubble|selection|insertion]",
		"export [--list <list-name>] [--create] [--replace]",
		"quit",
		"--debug",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
	if strings.Contains(stdout, "smarttodo logout [common flags]  ") {
		t.Error("top-level only commands should not be listed as session commands")
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	env := newEnv(t, nil, false)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, env, "--priority", "5", "Write", "report")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	snap := env.Tasks.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected 1 task, got %d", len(snap))
	}
	if snap[0].Description != "Write report" || snap[0].Priority != 5 {
		t.Errorf("unexpected task %+v", snap[0])
	}
}

func TestAddCommand_NegativePriorityShortFlag(t *testing.T) {
	env := newEnv(t, nil, false)

	_, _, code := runCommand(t, &commands.AddCmd{}, env, "-p", "-3", "Someday")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if got := env.Tasks.Snapshot()[0].Priority; got != -3 {
		t.Errorf("expected priority -3, got %d", got)
	}
}

func TestAddCommand_EmptyDescription(t *testing.T) {
	env := newEnv(t, nil, false)

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, env, "--priority", "2")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" || stderr != "" {
		t.Errorf("unexpected output %q / %q", stdout, stderr)
	}
	if env.Tasks.Len() != 1 || env.Tasks.Snapshot()[0].Description != "" {
		t.Errorf("expected one task with empty description, got %+v", env.Tasks.Snapshot())
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	env := newEnv(t, nil, true)

	stdout, _, code := runCommand(t, &commands.AddCmd{}, env, "Buy", "milk")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
	if env.Tasks.Snapshot()[0].Priority != 0 {
		t.Errorf("expected default priority 0")
	}
}

// Tests for rm command
func TestRmCommand_Success(t *testing.T) {
	env := newEnv(t, nil, false)
	seed(env)

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, env, "1")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "ok\n" || stderr != "" {
		t.Errorf("unexpected output %q / %q", stdout, stderr)
	}
	assertStrings(t, []string{"Write report", "Buy milk"}, snapshotDescriptions(env))
}

func TestRmCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		seeded  bool
		args    []string
		wantErr string
	}{
		{"empty list", false, []string{"0"}, "error: no tasks to delete\n"},
		{"index equals length", true, []string{"3"}, "error: invalid index: 3\n"},
		{"negative index", true, []string{"--", "-1"}, "error: invalid index: -1\n"},
		{"missing index", true, nil, "error: task index required\n"},
		{"not a number", true, []string{"first"}, "error: invalid task index: first\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, nil, false)
			if tt.seeded {
				seed(env)
			}
			before := snapshotDescriptions(env)

			stdout, stderr, code := runCommand(t, &commands.RmCmd{}, env, tt.args...)

			if code != exitcode.UserError {
				t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
			}
			if stdout != "" {
				t.Errorf("expected no stdout, got %q", stdout)
			}
			if stderr != tt.wantErr {
				t.Errorf("expected %q, got %q", tt.wantErr, stderr)
			}
			assertStrings(t, before, snapshotDescriptions(env))
		})
	}
}

// Tests for list command
func TestListCommand_Empty(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, newEnv(t, nil, false))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "no tasks found\n" {
		t.Errorf("expected %q, got %q", "no tasks found\n", stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, newEnv(t, nil, true))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_WithTasks(t *testing.T) {
	env := newEnv(t, nil, false)
	seed(env)

	stdout, _, code := runCommand(t, &commands.ListCmd{}, env)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "Tasks:\n   0  Write report (priority 5)\n   1  Call client (priority 9)\n   2  Buy milk (priority 1)\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

// Tests for sort command
func TestSortCommand_Bubble(t *testing.T) {
	env := newEnv(t, nil, false)
	seed(env)

	stdout, stderr, code := runCommand(t, &commands.SortCmd{}, env, "bubble")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if got := testutil.MaskDurations(stdout); got != "Bubble Sort completed in N.NNNNNN seconds.\n" {
		t.Errorf("unexpected report %q", got)
	}
	assertStrings(t, []string{"Call client", "Write report", "Buy milk"}, snapshotDescriptions(env))
}

func TestSortCommand_DefaultFromSettings(t *testing.T) {
	env := newEnv(t, nil, false)
	env.Config.Settings.DefaultAlgorithm = "insertion"
	seed(env)

	stdout, _, code := runCommand(t, &commands.SortCmd{}, env)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Insertion Sort completed in ") {
		t.Errorf("expected insertion sort report, got %q", stdout)
	}
}

func TestSortCommand_ShowSelection(t *testing.T) {
	env := newEnv(t, nil, false)
	env.Tasks.Append("a", 2)
	env.Tasks.Append("b", 1)
	env.Tasks.Append("c", 2)
	env.Tasks.Append("d", 3)

	stdout, _, code := runCommand(t, &commands.SortCmd{}, env, "--show", "s")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	expected := "Selection Sort completed in N.NNNNNN seconds.\n" +
		"Tasks:\n   0  d (priority 3)\n   1  c (priority 2)\n   2  a (priority 2)\n   3  b (priority 1)\n"
	if got := testutil.MaskDurations(stdout); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestSortCommand_EmptyList(t *testing.T) {
	env := newEnv(t, nil, true)

	stdout, stderr, code := runCommand(t, &commands.SortCmd{}, env, "insertion")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output in quiet mode, got %q / %q", stdout, stderr)
	}
}

func TestSortCommand_UnknownAlgorithm(t *testing.T) {
	env := newEnv(t, nil, false)
	seed(env)

	_, stderr, code := runCommand(t, &commands.SortCmd{}, env, "quick")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unknown sort algorithm: quick\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
	assertStrings(t, []string{"Write report", "Call client", "Buy milk"}, snapshotDescriptions(env))
}

// Tests for bench command
func TestBenchCommand_Generated(t *testing.T) {
	cmd := &commands.BenchCmd{}
	cmd.SetSize(50)
	cmd.SetSeed(7)

	var outBuf, errBuf bytes.Buffer
	code := cmd.Run(context.Background(), newEnv(t, nil, false), nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d: %s", exitcode.Success, code, errBuf.String())
	}
	expected := "Sorting 50 tasks (seed 7)\n" +
		"  Bubble Sort     N.NNNNNN seconds\n" +
		"  Selection Sort  N.NNNNNN seconds\n" +
		"  Insertion Sort  N.NNNNNN seconds\n"
	if got := testutil.MaskDurations(outBuf.String()); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestBenchCommand_SizeFromSettings(t *testing.T) {
	env := newEnv(t, nil, false)
	env.Config.Settings.BenchSize = 12

	stdout, _, code := runCommand(t, &commands.BenchCmd{}, env)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Sorting 12 tasks (seed 42)\n") {
		t.Errorf("unexpected header in %q", stdout)
	}
}

func TestBenchCommand_CurrentLeavesSessionUnsorted(t *testing.T) {
	env := newEnv(t, nil, false)
	env.InSession = true
	seed(env)

	stdout, _, code := runCommand(t, &commands.BenchCmd{}, env, "--current")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if !strings.HasPrefix(stdout, "Sorting 3 session tasks\n") {
		t.Errorf("unexpected header in %q", stdout)
	}
	assertStrings(t, []string{"Write report", "Call client", "Buy milk"}, snapshotDescriptions(env))
}

func TestBenchCommand_CurrentOutsideSession(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.BenchCmd{}, newEnv(t, nil, false), "--current")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if stderr != "error: --current is only available inside a session\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestBenchCommand_NegativeSize(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.BenchCmd{}, newEnv(t, nil, false), "--size", "-5")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: invalid size: -5\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

func TestGenerateTasks_Deterministic(t *testing.T) {
	a := commands.GenerateTasks(100, 9).Snapshot()
	b := commands.GenerateTasks(100, 9).Snapshot()

	if len(a) != 100 {
		t.Fatalf("expected 100 tasks, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entry %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if a[i].Priority < 1 || a[i].Priority > 100 {
			t.Errorf("priority out of range: %d", a[i].Priority)
		}
	}
}

// Tests for lists command
func TestListsCommand(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddList("shopping", "Shopping")
	svc.AddList("work", "Work")

	stdout, stderr, code := runCommand(t, &commands.ListsCmd{}, newEnv(t, svc, false))

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "My Tasks [default]\nShopping\nWork\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListsCommand_BackendError(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListListsErr = errors.New("request timed out")

	_, stderr, code := runCommand(t, &commands.ListsCmd{}, newEnv(t, svc, false))

	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if stderr != "error: backend error: request timed out\n" {
		t.Errorf("unexpected stderr %q", stderr)
	}
}

// Tests for registry
func TestRegistry_DuplicateAlias(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.ListCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.ListCmd{}); err == nil {
		t.Error("expected error registering list twice")
	}
}

type aliasClash struct{ commands.VersionCmd }

func (aliasClash) Name() string      { return "remove" }
func (aliasClash) Aliases() []string { return []string{"rm"} }

func TestRegistry_AliasClashesWithName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Register(&aliasClash{})
	if err == nil || err.Error() != "command name or alias already registered: rm" {
		t.Errorf("unexpected error %v", err)
	}
	if _, ok := r.Find("remove"); ok {
		t.Error("a rejected command must not be registered")
	}
}

func TestRegistry_FindByAlias(t *testing.T) {
	cmd, ok := commands.DefaultRegistry.Find("ls")
	if !ok || cmd.Name() != "list" {
		t.Errorf("expected ls to resolve to list, got %v", cmd)
	}
}

func TestRegistry_InScope(t *testing.T) {
	var names []string
	for _, cmd := range commands.DefaultRegistry.InScope(commands.ScopeSession) {
		names = append(names, cmd.Name())
	}
	assertStrings(t, []string{"add", "bench", "export", "help", "list", "lists", "report", "rm", "sort", "version"}, names)

	names = nil
	for _, cmd := range commands.DefaultRegistry.InScope(commands.ScopeTop) {
		names = append(names, cmd.Name())
	}
	assertStrings(t, []string{"bench", "help", "lists", "login", "logout", "menu", "shell", "version"}, names)
}
