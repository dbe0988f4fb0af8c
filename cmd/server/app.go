package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/service"
	"github.com/phrazzld/task-api/internal/store"
)

// closeFunc releases the resources behind a task store.
type closeFunc func(ctx context.Context) error

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	taskStore  store.TaskStore
	closeStore closeFunc

	taskService service.TaskService
}

// newApplication creates a new application instance with all dependencies initialized.
// The task store must already be open; the application takes ownership of
// closeStore and calls it from cleanup.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	taskStore store.TaskStore,
	closeStore closeFunc,
) (*application, error) {
	if closeStore == nil {
		closeStore = func(context.Context) error { return nil }
	}

	app := &application{
		config:     cfg,
		logger:     logger,
		taskStore:  taskStore,
		closeStore: closeStore,
	}

	var err error
	app.taskService, err = service.NewTaskService(taskStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if err := app.closeStore(ctx); err != nil {
		app.logger.Error("error closing task store", "error", err)
	}

	app.logger.Info("application shutdown completed")
}
