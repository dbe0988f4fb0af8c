package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// ValidID reports whether id is well formed for the underlying store.
	// It performs no I/O.
	ValidID(id string) bool

	// ListTasks returns every task, most recently created first
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// GetTask retrieves a task by its ID
	GetTask(ctx context.Context, id string) (*domain.Task, error)

	// CreateTask persists a new task built from validated input
	CreateTask(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error)

	// UpdateTask applies a partial update. An empty patch performs no write
	// and returns the current task.
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task and returns it as it was before removal
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	logger *slog.Logger
}

// NewTaskService creates a new TaskService
// It returns an error if the store is nil.
func NewTaskService(tasks store.TaskStore, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// checkID rejects ids the store could never have issued without touching the store.
func (s *taskServiceImpl) checkID(id string) error {
	if !s.ValidID(id) {
		return domain.NewValidationError("id", "Invalid id", domain.ErrInvalidID)
	}
	return nil
}

// ValidID implements TaskService.ValidID
func (s *taskServiceImpl) ValidID(id string) bool {
	return s.tasks.ValidID(id)
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, s.storeError(ctx, "get_task", id, err)
	}
	return task, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.tasks.Create(ctx, in)
	if err != nil {
		log.Error("failed to create task", slog.String("error", redact.Error(err)))
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.checkID(id); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		log.Debug("empty update, returning current task", slog.String("task_id", id))
		task, err := s.tasks.GetByID(ctx, id)
		if err != nil {
			return nil, s.storeError(ctx, "update_task", id, err)
		}
		return task, nil
	}

	task, err := s.tasks.ApplyPatch(ctx, id, patch)
	if err != nil {
		return nil, s.storeError(ctx, "update_task", id, err)
	}

	log.Info("task updated",
		slog.String("task_id", id),
		slog.Any("fields_set", fieldNames(patch.SetFields())),
		slog.Any("fields_unset", patch.UnsetFields()))
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := s.checkID(id); err != nil {
		return nil, err
	}

	task, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return nil, s.storeError(ctx, "delete_task", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.String("task_id", id))
	return task, nil
}

func (s *taskServiceImpl) storeError(ctx context.Context, op, id string, err error) error {
	if store.IsNotFoundError(err) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("task not found",
			slog.String("operation", op),
			slog.String("task_id", id))
		return NewTaskServiceError(op, "task not found", ErrTaskNotFound)
	}

	logger.FromContextOrDefault(ctx, s.logger).Error("task store operation failed",
		slog.String("operation", op),
		slog.String("task_id", id),
		slog.String("error", redact.Error(err)))
	return NewTaskServiceError(op, "store operation failed", err)
}

func fieldNames(fields map[string]any) []string {
	names := make([]string, 0, len(fields))
	for _, name := range []string{"title", "subtitle", "status"} {
		if _, ok := fields[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
