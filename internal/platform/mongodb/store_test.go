package mongodb_test

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lexiglow/lexistore/internal/platform/mongodb"
	"github.com/lexiglow/lexistore/internal/store"
	"github.com/lexiglow/lexistore/internal/store/storetest"
)

// The conformance suite needs a real server; set LEXISTORE_TEST_MONGO_URI
// (e.g. mongodb://localhost:27017) to enable it. Each scenario runs in
// its own database, dropped afterwards.
var dbSeq atomic.Int64

func newTestStores(t *testing.T) *store.Stores {
	t.Helper()

	uri := os.Getenv("LEXISTORE_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("LEXISTORE_TEST_MONGO_URI not set; skipping document engine conformance")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	name := fmt.Sprintf("lexistore_test_%d_%d", time.Now().UnixNano(), dbSeq.Add(1))
	db, err := mongodb.Connect(ctx, uri, name)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = mongodb.Disconnect(ctx, db)
	})

	require.NoError(t, mongodb.EnsureSchema(ctx, db))
	return mongodb.NewStores(db, nil)
}

func TestMongoConformance(t *testing.T) {
	storetest.Run(t, newTestStores)
}
