package store

import (
	"context"
	"database/sql"
)

// DBTX is the query surface the SQL task store needs. Both *sql.DB and
// *sql.Tx satisfy it, so a store can run against a pool in production and
// inside a rolled-back transaction in integration tests.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
