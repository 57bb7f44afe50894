// Package service defines the remote task service that a session can be
// published to.
package service

import (
	"context"
	"errors"
)

var (
	// ErrListNotFound is wrapped by ResolveList when no list has the name.
	ErrListNotFound = errors.New("list not found")

	// ErrAmbiguousList is wrapped by ResolveList when several lists share the name.
	ErrAmbiguousList = errors.New("ambiguous list name")
)

// Service is the remote side of export and lists.
// Commands never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by title, ignoring case and surrounding space.
	// The error wraps ErrListNotFound or ErrAmbiguousList.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateList creates a new task list and returns it.
	CreateList(ctx context.Context, name string) (TaskList, error)

	// OpenTasks returns every open task of a list, top first.
	OpenTasks(ctx context.Context, listID string) ([]Task, error)

	// InsertTask creates a task directly below the task with ID previous,
	// or at the top of the list when previous is empty.
	InsertTask(ctx context.Context, listID string, task NewTask, previous string) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
