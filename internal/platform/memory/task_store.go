// Package memory provides a process-local implementation of store.TaskStore.
// It backs the "memory" database driver used for local development and is
// the store of choice in handler and service tests.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/store"
)

// Compile-time check to ensure TaskStore implements store.TaskStore.
var _ store.TaskStore = (*TaskStore)(nil)

type entry struct {
	task *domain.Task
	seq  uint64
}

// TaskStore keeps tasks in a mutex-guarded map. Callers always receive
// copies, so mutating a returned task never changes stored state.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  map[string]entry
	seq    uint64
	now    func() time.Time
	logger *slog.Logger
}

// Option customizes a TaskStore.
type Option func(*TaskStore)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		s.now = now
	}
}

// NewTaskStore creates an empty in-memory task store.
// If logger is nil, a default logger will be used.
func NewTaskStore(logger *slog.Logger, opts ...Option) *TaskStore {
	if logger == nil {
		logger = slog.Default()
	}
	s := &TaskStore{
		tasks:  make(map[string]entry),
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With(slog.String("component", "memory_task_store")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidID implements store.TaskStore. Ids are canonical UUID strings.
func (s *TaskStore) ValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	entries := make([]entry, 0, len(s.tasks))
	for _, e := range s.tasks {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	// Newest first; the insertion sequence breaks timestamp ties
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]*domain.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.task.Clone()
	}
	return tasks, nil
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, store.NewStoreError("task", "create", "invalid task", wrapInvalid(err))
	}

	task := domain.NewTask(uuid.NewString(), in, s.now())

	s.mu.Lock()
	s.seq++
	s.tasks[task.ID] = entry{task: task, seq: s.seq}
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("task stored", slog.String("task_id", task.ID))
	return task.Clone(), nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return e.task.Clone(), nil
}

// ApplyPatch implements store.TaskStore.
func (s *TaskStore) ApplyPatch(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, store.NewStoreError("task", "update", "invalid patch", wrapInvalid(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}

	updated := e.task.Clone()
	patch.Apply(updated, s.now())
	s.tasks[id] = entry{task: updated, seq: e.seq}

	return updated.Clone(), nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return e.task, nil
}

// Len returns the number of stored tasks.
func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func wrapInvalid(err error) error {
	return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
}
