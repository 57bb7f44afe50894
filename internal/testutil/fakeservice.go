// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"smarttodo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// ErrNotFound is returned for unknown list or task IDs.
var ErrNotFound = errors.New("not found")

// FakeService is an in-memory service.Service. Like Google Tasks, a task
// inserted without a previous task goes to the top of its list.
type FakeService struct {
	mu     sync.Mutex
	lists  []service.TaskList
	tasks  map[string][]service.Task // listID -> tasks, top first
	nextID int

	// Error injection
	DefaultListErr error
	ListListsErr   error
	ResolveListErr error
	CreateListErr  error
	OpenTasksErr   error
	InsertTaskErr  error
	DeleteTaskErr  error

	// InsertTaskFailAfter lets this many inserts succeed before
	// InsertTaskErr is returned.
	InsertTaskFailAfter int
	inserts             int
}

var _ service.Service = (*FakeService)(nil)

// NewFakeService returns a FakeService holding an empty default list
// titled "My Tasks".
func NewFakeService() *FakeService {
	return &FakeService{
		lists: []service.TaskList{{ID: DefaultListID, Title: "My Tasks", IsDefault: true}},
		tasks: map[string][]service.Task{DefaultListID: nil},
	}
}

// AddList adds an empty list.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// AddTask appends an open task to the bottom of a list.
func (f *FakeService) AddTask(listID, taskID, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks[listID] = append(f.tasks[listID], service.Task{ID: taskID, Title: title, Status: "needsAction"})
}

// Titles returns the titles of a list's tasks, top first.
func (f *FakeService) Titles(listID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var titles []string
	for _, t := range f.tasks[listID] {
		titles = append(titles, t.Title)
	}
	return titles
}

// Tasks returns a copy of a list's tasks, top first.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.tasks[listID])
}

func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.lists), nil
}

func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	name = strings.TrimSpace(name)
	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.EqualFold(strings.TrimSpace(l.Title), name) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrListNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("%w: %s", service.ErrAmbiguousList, name)
	}
}

// CreateList derives the new list's ID from its name: "Road Trip" -> "road-trip".
func (f *FakeService) CreateList(ctx context.Context, name string) (service.TaskList, error) {
	if f.CreateListErr != nil {
		return service.TaskList{}, f.CreateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	list := service.TaskList{ID: strings.ToLower(strings.ReplaceAll(name, " ", "-")), Title: name}
	f.lists = append(f.lists, list)
	f.tasks[list.ID] = nil
	return list, nil
}

func (f *FakeService) OpenTasks(ctx context.Context, listID string) ([]service.Task, error) {
	if f.OpenTasksErr != nil {
		return nil, f.OpenTasksErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	all, ok := f.tasks[listID]
	if !ok {
		return nil, ErrNotFound
	}
	var open []service.Task
	for _, t := range all {
		if t.Status == "needsAction" {
			open = append(open, t)
		}
	}
	return open, nil
}

func (f *FakeService) InsertTask(ctx context.Context, listID string, task service.NewTask, previous string) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.InsertTaskErr != nil && f.inserts >= f.InsertTaskFailAfter {
		return service.Task{}, f.InsertTaskErr
	}

	list, ok := f.tasks[listID]
	if !ok {
		return service.Task{}, ErrNotFound
	}

	pos := 0
	if previous != "" {
		i := slices.IndexFunc(list, func(t service.Task) bool { return t.ID == previous })
		if i < 0 {
			return service.Task{}, ErrNotFound
		}
		pos = i + 1
	}

	f.inserts++
	f.nextID++
	created := service.Task{
		ID:     fmt.Sprintf("task-%d", f.nextID),
		Title:  task.Title,
		Notes:  task.Notes,
		Status: "needsAction",
	}
	f.tasks[listID] = slices.Insert(list, pos, created)
	return created, nil
}

func (f *FakeService) DeleteTask(ctx context.Context, listID, taskID string) error {
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	list, ok := f.tasks[listID]
	if !ok {
		return ErrNotFound
	}
	i := slices.IndexFunc(list, func(t service.Task) bool { return t.ID == taskID })
	if i < 0 {
		return ErrNotFound
	}
	f.tasks[listID] = slices.Delete(list, i, i+1)
	return nil
}
