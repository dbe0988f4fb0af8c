package domain

import (
	"strings"
	"time"
)

// TaskStatus represents the progress state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusToDo       TaskStatus = "to do"
	TaskStatusInProgress TaskStatus = "in progress"
	TaskStatusDone       TaskStatus = "done"
)

// DefaultTaskStatus is assigned to tasks created without an explicit status.
const DefaultTaskStatus = TaskStatusToDo

var taskStatuses = []TaskStatus{TaskStatusToDo, TaskStatusInProgress, TaskStatusDone}

// TaskStatuses returns the allowed status values in display order.
func TaskStatuses() []TaskStatus {
	out := make([]TaskStatus, len(taskStatuses))
	copy(out, taskStatuses)
	return out
}

// TaskStatusList returns the allowed status values as a comma-separated list,
// suitable for error messages.
func TaskStatusList() string {
	names := make([]string, len(taskStatuses))
	for i, s := range taskStatuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// Valid reports whether s is one of the enumerated statuses.
func (s TaskStatus) Valid() bool {
	for _, allowed := range taskStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

// ParseTaskStatus converts a raw string into a TaskStatus. Matching is exact:
// no trimming or case folding is applied.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", ErrInvalidTaskStatus
	}
	return s, nil
}

// Task is the single entity managed by the application: a to-do item with a
// title, an optional subtitle and a status. ID and timestamps are owned by
// the store.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Subtitle  *string    `json:"subtitle,omitempty"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Validate checks the stored-record invariants of the task.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTaskTitle
	}
	if t.Subtitle != nil && strings.TrimSpace(*t.Subtitle) == "" {
		return ErrEmptyTaskSubtitle
	}
	if !t.Status.Valid() {
		return ErrInvalidTaskStatus
	}
	return nil
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.Subtitle != nil {
		s := *t.Subtitle
		c.Subtitle = &s
	}
	return &c
}

// NewTaskInput holds the validated fields of a task that is about to be created.
type NewTaskInput struct {
	Title    string
	Subtitle *string
	Status   TaskStatus
}

// NewTaskInputFrom normalizes raw creation fields: title and subtitle are
// trimmed, a blank subtitle becomes absent and an empty status becomes the
// default. Returns an error if the result violates the Task invariants.
func NewTaskInputFrom(title string, subtitle *string, status TaskStatus) (NewTaskInput, error) {
	in := NewTaskInput{
		Title:  strings.TrimSpace(title),
		Status: status,
	}
	if subtitle != nil {
		if trimmed := strings.TrimSpace(*subtitle); trimmed != "" {
			in.Subtitle = &trimmed
		}
	}
	if in.Status == "" {
		in.Status = DefaultTaskStatus
	}
	if err := in.Validate(); err != nil {
		return NewTaskInput{}, err
	}
	return in, nil
}

// Validate checks the input against the Task invariants.
func (in NewTaskInput) Validate() error {
	t := Task{Title: in.Title, Subtitle: in.Subtitle, Status: in.Status}
	return t.Validate()
}

// NewTask builds a Task from validated input, assigning the given id and
// stamping both timestamps with now.
func NewTask(id string, in NewTaskInput, now time.Time) *Task {
	t := &Task{
		ID:        id,
		Title:     in.Title,
		Status:    in.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Subtitle != nil {
		s := *in.Subtitle
		t.Subtitle = &s
	}
	return t
}
