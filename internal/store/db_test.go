package store_test

import (
	"database/sql"
	"testing"

	"github.com/phrazzld/task-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestDBTXImplementations(t *testing.T) {
	t.Parallel()

	var (
		_ store.DBTX = (*sql.DB)(nil)
		_ store.DBTX = (*sql.Tx)(nil)
	)

	assert.Implements(t, (*store.DBTX)(nil), &sql.DB{})
	assert.Implements(t, (*store.DBTX)(nil), &sql.Tx{})
}
