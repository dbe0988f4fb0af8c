package mocks

import (
	"context"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// TestifyMockTaskService is a mock of service.TaskService for use with testify/mock
type TestifyMockTaskService struct {
	mock.Mock
}

func taskResult(args mock.Arguments) (*domain.Task, error) {
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// ValidID is a mock implementation of service.TaskService.ValidID
func (m *TestifyMockTaskService) ValidID(id string) bool {
	return m.Called(id).Bool(0)
}

// ListTasks is a mock implementation of service.TaskService.ListTasks
func (m *TestifyMockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	args := m.Called(ctx)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetTask is a mock implementation of service.TaskService.GetTask
func (m *TestifyMockTaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return taskResult(m.Called(ctx, id))
}

// CreateTask is a mock implementation of service.TaskService.CreateTask
func (m *TestifyMockTaskService) CreateTask(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	return taskResult(m.Called(ctx, in))
}

// UpdateTask is a mock implementation of service.TaskService.UpdateTask
func (m *TestifyMockTaskService) UpdateTask(
	ctx context.Context,
	id string,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	return taskResult(m.Called(ctx, id, patch))
}

// DeleteTask is a mock implementation of service.TaskService.DeleteTask
func (m *TestifyMockTaskService) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	return taskResult(m.Called(ctx, id))
}
