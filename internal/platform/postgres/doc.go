// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It handles query execution, error mapping between PostgreSQL codes and
// store errors, and bootstrapping the tasks table through embedded goose
// migrations.
package postgres
