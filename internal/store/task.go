package store

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
//
// Implementations own id generation and the createdAt/updatedAt timestamps.
// Every mutating method is a single atomic operation on one record; callers
// must not assume any ordering between concurrent mutations of the same id.
type TaskStore interface {
	// ValidID reports whether id is syntactically a key this store could have
	// issued. It never performs I/O, so callers can tell a malformed id apart
	// from a well-formed id that matches nothing.
	ValidID(id string) bool

	// List returns every task ordered by creation time, most recent first.
	// An empty store yields an empty, non-nil slice.
	List(ctx context.Context) ([]*domain.Task, error)

	// Create inserts a new task and returns it with id and timestamps assigned.
	Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error)

	// GetByID retrieves a task by id.
	// Returns ErrTaskNotFound if no task matches.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// ApplyPatch atomically applies the set/unset changes in patch, bumps
	// updatedAt and returns the updated task.
	// Returns ErrTaskNotFound if no task matches.
	ApplyPatch(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes a task and returns it as it was immediately before removal.
	// Returns ErrTaskNotFound if no task matches.
	Delete(ctx context.Context, id string) (*domain.Task, error)
}
