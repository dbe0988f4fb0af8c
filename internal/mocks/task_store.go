package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// Unset function fields fall back to DefaultError and the default values.
type MockTaskStore struct {
	// Custom behavior functions
	ValidIDFn    func(id string) bool
	ListFn       func(ctx context.Context) ([]*domain.Task, error)
	CreateFn     func(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error)
	GetByIDFn    func(ctx context.Context, id string) (*domain.Task, error)
	ApplyPatchFn func(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteFn     func(ctx context.Context, id string) (*domain.Task, error)

	// Default return values
	Task         *domain.Task
	Tasks        []*domain.Task
	DefaultError error

	mu    sync.Mutex
	calls map[string]int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockTaskStore) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// Writes returns the number of mutating calls (Create, ApplyPatch, Delete).
func (m *MockTaskStore) Writes() int {
	return m.Calls("Create") + m.Calls("ApplyPatch") + m.Calls("Delete")
}

// ValidID implements the TaskStore.ValidID method. Without ValidIDFn every
// non-empty id is accepted.
func (m *MockTaskStore) ValidID(id string) bool {
	m.record("ValidID")
	if m.ValidIDFn != nil {
		return m.ValidIDFn(id)
	}
	return id != ""
}

// List implements the TaskStore.List method
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	m.record("List")
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.Tasks, m.DefaultError
}

// Create implements the TaskStore.Create method
func (m *MockTaskStore) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	m.record("Create")
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return m.Task, m.DefaultError
}

// GetByID implements the TaskStore.GetByID method
func (m *MockTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	m.record("GetByID")
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return m.Task, m.DefaultError
}

// ApplyPatch implements the TaskStore.ApplyPatch method
func (m *MockTaskStore) ApplyPatch(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	m.record("ApplyPatch")
	if m.ApplyPatchFn != nil {
		return m.ApplyPatchFn(ctx, id, patch)
	}
	return m.Task, m.DefaultError
}

// Delete implements the TaskStore.Delete method
func (m *MockTaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	m.record("Delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Task, m.DefaultError
}
