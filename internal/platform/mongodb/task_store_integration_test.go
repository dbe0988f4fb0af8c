//go:build integration

package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/domain"
	"github.com/phrazzld/task-api/internal/store"
	"github.com/phrazzld/task-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupStore(t *testing.T) *TaskStore {
	t.Helper()

	uri := testdb.MongoURL(t)
	ctx := context.Background()
	client, err := Connect(ctx, uri, 5*time.Second, nil)
	require.NoError(t, err)

	db := client.Database("tasks_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	coll := db.Collection(DefaultCollection)
	require.NoError(t, EnsureIndexes(ctx, coll))
	return NewTaskStore(coll, 5*time.Second, nil)
}

func TestTaskStoreLifecycle(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)

	sub := "two litres"
	first, err := s.Create(ctx, domain.NewTaskInput{Title: "Buy milk", Subtitle: &sub, Status: domain.TaskStatusToDo})
	require.NoError(t, err)
	second, err := s.Create(ctx, domain.NewTaskInput{Title: "Walk dog", Status: domain.TaskStatusInProgress})
	require.NoError(t, err)

	tasks, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, first.ID, tasks[1].ID)

	got, err := s.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	updated, err := s.ApplyPatch(ctx, first.ID, domain.TaskPatch{
		Subtitle: domain.Remove[string](),
		Status:   domain.Set(domain.TaskStatusDone),
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Subtitle)
	assert.Equal(t, domain.TaskStatusDone, updated.Status)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.True(t, first.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(first.UpdatedAt))

	deleted, err := s.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, deleted)

	_, err = s.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	_, err = s.Delete(ctx, first.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	_, err = s.ApplyPatch(ctx, primitive.NewObjectID().Hex(), domain.TaskPatch{Title: domain.Set("x")})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
