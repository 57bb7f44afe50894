// Package tasklist holds the in-memory ordered task collection and the sorts
// that reorder it by priority.
package tasklist

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrEmptyList is returned when removing from a list with no tasks.
var ErrEmptyList = errors.New("empty list")

// ErrInvalidIndex is returned when a removal index is outside [0, Len()).
var ErrInvalidIndex = errors.New("invalid index")

// Task is a single to-do item.
type Task struct {
	Description string
	Priority    int
}

// Entry is a positioned view of a task, as returned by Snapshot.
type Entry struct {
	Index       int
	Description string
	Priority    int
}

// TaskList is an ordered, mutable sequence of tasks.
// Insertion order is kept until Sort is called.
// The zero value is an empty list ready to use.
type TaskList struct {
	tasks []Task
}

// New creates an empty task list.
func New() *TaskList {
	return &TaskList{}
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Append adds a task at the end of the list.
func (l *TaskList) Append(description string, priority int) {
	l.tasks = append(l.tasks, Task{Description: description, Priority: priority})
}

// RemoveAt removes the task at index and shifts later tasks left by one.
// The list is left unchanged on error.
func (l *TaskList) RemoveAt(index int) error {
	if len(l.tasks) == 0 {
		return ErrEmptyList
	}
	if index < 0 || index >= len(l.tasks) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	l.tasks = slices.Delete(l.tasks, index, index+1)
	return nil
}

// Snapshot returns the tasks in order with their current positions.
func (l *TaskList) Snapshot() []Entry {
	entries := make([]Entry, len(l.tasks))
	for i, t := range l.tasks {
		entries[i] = Entry{Index: i, Description: t.Description, Priority: t.Priority}
	}
	return entries
}

// Tasks returns a copy of the tasks in order.
func (l *TaskList) Tasks() []Task {
	return slices.Clone(l.tasks)
}

// Clone returns an independent copy of the list.
func (l *TaskList) Clone() *TaskList {
	return &TaskList{tasks: slices.Clone(l.tasks)}
}

// Sort reorders the list in place by descending priority using alg and
// returns the elapsed wall-clock time.
func (l *TaskList) Sort(alg Algorithm) time.Duration {
	start := time.Now()
	alg.sortFunc()(l.tasks)
	return time.Since(start)
}
