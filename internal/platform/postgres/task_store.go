package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
)

const taskColumns = "id, title, subtitle, status, created_at, updated_at"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db           store.DBTX
	queryTimeout time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, queryTimeout time.Duration, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTaskStore{
		db:           db,
		queryTimeout: queryTimeout,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger.With(slog.String("component", "postgres_task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// ValidID implements store.TaskStore. Ids are canonical UUID strings.
func (s *PostgresTaskStore) ValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}

func (s *PostgresTaskStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// timestamp returns the current time at the microsecond precision TIMESTAMPTZ keeps.
func (s *PostgresTaskStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task     domain.Task
		subtitle sql.NullString
		status   string
	)
	if err := row.Scan(&task.ID, &task.Title, &subtitle, &status, &task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, err
	}
	if subtitle.Valid {
		task.Subtitle = &subtitle.String
	}
	task.Status = domain.TaskStatus(status)
	task.CreatedAt = task.CreatedAt.UTC()
	task.UpdatedAt = task.UpdatedAt.UTC()
	return &task, nil
}

// List implements store.TaskStore.List
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at DESC, seq DESC`
	rows, err := s.db.QueryContext(opCtx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list tasks: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", redact.Error(err)))
			return nil, fmt.Errorf("failed to list tasks: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create implements store.TaskStore.Create
// Returns store.ErrInvalidEntity if the input violates the task invariants.
func (s *PostgresTaskStore) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	now := s.timestamp()

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	query := `
		INSERT INTO tasks (id, title, subtitle, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + taskColumns

	task, err := scanTask(s.db.QueryRowContext(
		opCtx,
		query,
		uuid.New(),
		in.Title,
		in.Subtitle,
		string(in.Status),
		now,
		now,
	))
	if err != nil {
		log.Error("failed to create task", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to create task: %w", MapError(err))
	}

	log.Debug("task created", slog.String("task_id", task.ID))
	return task, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	task, err := scanTask(s.db.QueryRowContext(opCtx, query, id))
	if err != nil {
		return nil, s.mapError(ctx, "get", id, err)
	}
	return task, nil
}

// ApplyPatch implements store.TaskStore.ApplyPatch
// The update and the read of the new row happen in a single statement.
func (s *PostgresTaskStore) ApplyPatch(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("task patch validation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	query, args := buildPatchQuery(id, patch, s.timestamp())
	task, err := scanTask(s.db.QueryRowContext(opCtx, query, args...))
	if err != nil {
		return nil, s.mapError(ctx, "update", id, err)
	}

	log.Debug("task updated", slog.String("task_id", id))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// Returns the row as it was before removal.
func (s *PostgresTaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = $1 RETURNING ` + taskColumns
	task, err := scanTask(s.db.QueryRowContext(opCtx, query, id))
	if err != nil {
		return nil, s.mapError(ctx, "delete", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted", slog.String("task_id", id))
	return task, nil
}

func (s *PostgresTaskStore) mapError(ctx context.Context, op, id string, err error) error {
	mapped := MapError(err)
	if store.IsNotFoundError(mapped) {
		return mapped
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		slog.String("operation", op),
		slog.String("task_id", id),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError("task", op, "postgres operation failed", mapped)
}

// buildPatchQuery renders a single UPDATE ... RETURNING statement for a
// validated patch. updated_at is always assigned.
func buildPatchQuery(id string, patch domain.TaskPatch, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if patch.Title.IsSet() {
		sets = append(sets, "title = "+arg(patch.Title.Value))
	}
	switch patch.Subtitle.Op {
	case domain.PatchSet:
		sets = append(sets, "subtitle = "+arg(patch.Subtitle.Value))
	case domain.PatchRemove:
		sets = append(sets, "subtitle = NULL")
	}
	if patch.Status.IsSet() {
		sets = append(sets, "status = "+arg(string(patch.Status.Value)))
	}
	sets = append(sets, "updated_at = "+arg(now))

	query := "UPDATE tasks SET " + strings.Join(sets, ", ") +
		" WHERE id = " + arg(id) +
		" RETURNING " + taskColumns
	return query, args
}
