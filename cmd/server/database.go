package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/task-api/internal/config"
	"github.com/phrazzld/task-api/internal/platform/memory"
	"github.com/phrazzld/task-api/internal/platform/mongodb"
	"github.com/phrazzld/task-api/internal/platform/postgres"
	"github.com/phrazzld/task-api/internal/store"
)

// openTaskStore connects to the configured backend and returns the store
// together with the function that closes it. A backend that cannot be
// reached within the connect timeout is an error.
func openTaskStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.TaskStore, closeFunc, error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory task store; tasks are lost on restart")
		return memory.NewTaskStore(logger), func(context.Context) error { return nil }, nil

	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.Database.URL, cfg.Database.ConnectTimeout(), logger)
		if err != nil {
			return nil, nil, err
		}

		coll := client.Database(cfg.Database.Name).Collection(mongodb.DefaultCollection)

		indexCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout())
		defer cancel()
		if err := mongodb.EnsureIndexes(indexCtx, coll); err != nil {
			logger.Warn("failed to ensure task indexes", "error", err)
		}

		closer := func(ctx context.Context) error { return client.Disconnect(ctx) }
		return mongodb.NewTaskStore(coll, cfg.Database.QueryTimeout(), logger), closer, nil

	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}

		if cfg.Database.AutoMigrate {
			migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			defer cancel()
			if err := postgres.Migrate(migrateCtx, db, logger); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}

		closer := func(context.Context) error { return db.Close() }
		return postgres.NewPostgresTaskStore(db, cfg.Database.QueryTimeout(), logger), closer, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// setupAppDatabase establishes a connection to the database and configures connection pools.
// Returns the database connection if successful, or an error if the connection fails.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool with reasonable defaults
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout())
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}
