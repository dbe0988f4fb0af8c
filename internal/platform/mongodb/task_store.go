package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/platform/logger"
	"github.com/phrazzld/task-api/internal/redact"
	"github.com/phrazzld/task-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// taskDocument is the stored shape of a task.
type taskDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	Title     string             `bson:"title"`
	Subtitle  *string            `bson:"subtitle,omitempty"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *taskDocument) toDomain() *domain.Task {
	return &domain.Task{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Subtitle:  d.Subtitle,
		Status:    domain.TaskStatus(d.Status),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// TaskStore implements store.TaskStore on a MongoDB collection.
type TaskStore struct {
	coll         *mongo.Collection
	queryTimeout time.Duration
	now          func() time.Time
	logger       *slog.Logger
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates a MongoDB task store on coll. Each operation is bounded
// by queryTimeout when it is positive.
// If logger is nil, a default logger will be used.
func NewTaskStore(coll *mongo.Collection, queryTimeout time.Duration, logger *slog.Logger) *TaskStore {
	if coll == nil {
		panic("collection cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskStore{
		coll:         coll,
		queryTimeout: queryTimeout,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       logger.With(slog.String("component", "mongo_task_store")),
	}
}

// ValidID implements store.TaskStore. Ids are 24-character hex ObjectIDs.
func (s *TaskStore) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (s *TaskStore) opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.queryTimeout)
}

// timestamp returns the current time at the millisecond precision BSON dates keep.
func (s *TaskStore) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// List implements store.TaskStore.
func (s *TaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	cursor, err := s.coll.Find(opCtx, bson.D{}, options.Find().SetSort(listSort()))
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(opCtx, &docs); err != nil {
		log.Error("failed to decode tasks", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	tasks := make([]*domain.Task, 0, len(docs))
	for i := range docs {
		tasks = append(tasks, docs[i].toDomain())
	}
	return tasks, nil
}

// Create implements store.TaskStore.
func (s *TaskStore) Create(ctx context.Context, in domain.NewTaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	now := s.timestamp()
	doc := taskDocument{
		ID:        primitive.NewObjectID(),
		Title:     in.Title,
		Subtitle:  in.Subtitle,
		Status:    string(in.Status),
		CreatedAt: now,
		UpdatedAt: now,
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	if _, err := s.coll.InsertOne(opCtx, doc); err != nil {
		log.Error("failed to insert task", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("task created", slog.String("task_id", doc.ID.Hex()))
	return doc.toDomain(), nil
}

// GetByID implements store.TaskStore.
func (s *TaskStore) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrTaskNotFound
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	var doc taskDocument
	if err := s.coll.FindOne(opCtx, byID(oid)).Decode(&doc); err != nil {
		return nil, s.mapError(ctx, "get", id, err)
	}
	return doc.toDomain(), nil
}

// ApplyPatch implements store.TaskStore.
func (s *TaskStore) ApplyPatch(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := patch.Validate(); err != nil {
		log.Warn("task patch validation failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrTaskNotFound
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = s.coll.FindOneAndUpdate(opCtx, byID(oid), buildUpdate(patch, s.timestamp()), opts).Decode(&doc)
	if err != nil {
		return nil, s.mapError(ctx, "update", id, err)
	}

	log.Debug("task updated",
		slog.String("task_id", id),
		slog.Int("fields_set", len(patch.SetFields())),
		slog.Int("fields_unset", len(patch.UnsetFields())))
	return doc.toDomain(), nil
}

// Delete implements store.TaskStore.
func (s *TaskStore) Delete(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrTaskNotFound
	}

	opCtx, cancel := s.opContext(ctx)
	defer cancel()

	var doc taskDocument
	if err := s.coll.FindOneAndDelete(opCtx, byID(oid)).Decode(&doc); err != nil {
		return nil, s.mapError(ctx, "delete", id, err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("task deleted", slog.String("task_id", id))
	return doc.toDomain(), nil
}

func (s *TaskStore) mapError(ctx context.Context, op, id string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrTaskNotFound
	}
	logger.FromContextOrDefault(ctx, s.logger).Error("task operation failed",
		slog.String("operation", op),
		slog.String("task_id", id),
		slog.String("error", redact.Error(err)))
	return store.NewStoreError("task", op, "mongo operation failed", err)
}

func byID(oid primitive.ObjectID) bson.D {
	return bson.D{{Key: "_id", Value: oid}}
}

// listSort orders newest first with the ObjectID as tie-break.
func listSort() bson.D {
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}
}

// buildUpdate translates a validated patch into a single update document.
// updatedAt is always set; $unset is only present when a field is removed.
func buildUpdate(patch domain.TaskPatch, now time.Time) bson.D {
	set := bson.D{}
	if patch.Title.IsSet() {
		set = append(set, bson.E{Key: "title", Value: patch.Title.Value})
	}
	if patch.Subtitle.IsSet() {
		set = append(set, bson.E{Key: "subtitle", Value: patch.Subtitle.Value})
	}
	if patch.Status.IsSet() {
		set = append(set, bson.E{Key: "status", Value: string(patch.Status.Value)})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: now})

	update := bson.D{{Key: "$set", Value: set}}

	unset := bson.D{}
	for _, field := range patch.UnsetFields() {
		unset = append(unset, bson.E{Key: field, Value: ""})
	}
	if len(unset) > 0 {
		update = append(update, bson.E{Key: "$unset", Value: unset})
	}
	return update
}
