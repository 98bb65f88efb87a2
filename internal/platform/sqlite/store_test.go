package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lexiglow/lexistore/internal/platform/sqlite"
	"github.com/lexiglow/lexistore/internal/store"
	"github.com/lexiglow/lexistore/internal/store/storetest"
)

func newTestStores(t *testing.T) *store.Stores {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.Migrate(context.Background(), db))
	return sqlite.NewStores(db, nil)
}

func TestSQLiteConformance(t *testing.T) {
	storetest.Run(t, newTestStores)
}
