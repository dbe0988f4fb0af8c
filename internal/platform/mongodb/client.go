package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/task-api/internal/redact"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DefaultCollection is the collection that holds task documents.
const DefaultCollection = "tasks"

// Connect opens a client for uri and verifies it with a ping against the
// primary. The returned client must be closed with Disconnect.
func Connect(
	ctx context.Context,
	uri string,
	connectTimeout time.Duration,
	logger *slog.Logger,
) (*mongo.Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("task-api").
		SetServerSelectionTimeout(connectTimeout).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		// Best effort; the ping error is the one worth reporting
		_ = client.Disconnect(context.Background())
		logger.Error("mongo ping failed", slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("connected to mongo")
	return client, nil
}

// EnsureIndexes creates the index backing the newest-first listing. It is
// idempotent.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    listSort(),
		Options: options.Index().SetName("createdAt_desc_id_desc"),
	})
	if err != nil {
		return fmt.Errorf("failed to create task indexes: %w", err)
	}
	return nil
}
