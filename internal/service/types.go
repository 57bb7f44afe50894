package service

// Task is a task as stored by the remote service.
type Task struct {
	ID     string
	Title  string
	Notes  string
	Status string // "needsAction" or "completed"
}

// NewTask holds the fields sent when a task is created.
type NewTask struct {
	Title string
	Notes string
}

// TaskList is a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
