// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"smarttodo/internal/service"
	"smarttodo/internal/tasklist"
)

const (
	// TasksHeader precedes the task listing.
	TasksHeader = "Tasks:"

	// NoTasks is printed when the list is empty.
	NoTasks = "no tasks found"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
	boldGreen = color.New(color.Bold, color.FgGreen).SprintFunc()
	red       = color.New(color.FgRed).SprintFunc()
	yellow    = color.New(color.FgYellow).SprintFunc()
)

// SetColor forces coloured output on or off.
func SetColor(enabled bool) {
	color.NoColor = !enabled
}

// FormatTask formats a task line.
// Format: "{N:>4}  {DESCRIPTION} (priority {P})\n"
func FormatTask(w io.Writer, e tasklist.Entry) {
	fmt.Fprintf(w, "%4d  %s %s\n", e.Index, normalizeTitle(e.Description), priorityLabel(e.Priority))
}

// FormatTaskList formats the "Tasks:" header followed by every entry.
func FormatTaskList(w io.Writer, entries []tasklist.Entry) {
	fmt.Fprintln(w, bold(TasksHeader))
	for _, e := range entries {
		FormatTask(w, e)
	}
}

// FormatSortReport formats the timing line printed after a sort.
// Format: "Bubble Sort completed in 0.000012 seconds.\n"
func FormatSortReport(w io.Writer, alg tasklist.Algorithm, elapsed time.Duration) {
	fmt.Fprintf(w, "%s completed in %s seconds.\n", bold(alg.String()), boldGreen(Seconds(elapsed)))
}

// FormatBenchHeader formats the heading of a bench run.
func FormatBenchHeader(w io.Writer, size int, seed uint64) {
	fmt.Fprintf(w, "Sorting %d tasks (seed %d)\n", size, seed)
}

// FormatBenchRow formats one algorithm's timing in a bench run.
// Format: "  {NAME:<16}{SECONDS} seconds\n"
func FormatBenchRow(w io.Writer, alg tasklist.Algorithm, elapsed time.Duration) {
	fmt.Fprintf(w, "  %-16s%s seconds\n", alg.String(), Seconds(elapsed))
}

// FormatListName formats a remote list name for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	title := normalizeTitle(list.Title)
	if list.IsDefault {
		title += " " + dim("[default]")
	}
	fmt.Fprintln(w, title)
}

// Seconds renders a duration as fractional seconds with microsecond precision.
func Seconds(d time.Duration) string {
	return fmt.Sprintf("%.6f", d.Seconds())
}

// ExportTitle is the remote task title for an exported task.
// Format: "[P{PRIORITY}] {DESCRIPTION}"
func ExportTitle(t tasklist.Task) string {
	return fmt.Sprintf("[P%d] %s", t.Priority, normalizeTitle(t.Description))
}

// ExportTask builds the remote task for an exported task. The priority is
// repeated in the notes.
func ExportTask(t tasklist.Task) service.NewTask {
	return service.NewTask{
		Title: ExportTitle(t),
		Notes: fmt.Sprintf("priority %d", t.Priority),
	}
}

// Error formats an error line on errOut.
func Error(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", red("error:"), fmt.Sprintf(format, args...))
}

func priorityLabel(p int) string {
	label := fmt.Sprintf("(priority %d)", p)
	if p > 0 {
		return yellow(label)
	}
	return label
}

// normalizeTitle normalizes a task description for display.
// - Empty or whitespace-only descriptions become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
