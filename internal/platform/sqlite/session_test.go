package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE "scratch" ("id" TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	return db
}

func scratchCount(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM "scratch"`))
	return n
}

func scratchInsert(ctx context.Context, db *sqlx.DB, id string) error {
	_, err := ext(ctx, db).ExecContext(ctx, `INSERT INTO "scratch" ("id") VALUES (?)`, id)
	return err
}

func TestRunInTransactionCommits(t *testing.T) {
	db := sessionTestDB(t)
	ctx := context.Background()

	err := RunInTransaction(ctx, db, func(ctx context.Context) error {
		return scratchInsert(ctx, db, "a")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, scratchCount(t, db))
}

func TestRunInTransactionRollsBackOnError(t *testing.T) {
	db := sessionTestDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := RunInTransaction(ctx, db, func(ctx context.Context) error {
		if err := scratchInsert(ctx, db, "a"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, scratchCount(t, db))
}

func TestRunInTransactionFlattensNestedScopes(t *testing.T) {
	db := sessionTestDB(t)
	ctx := context.Background()

	err := RunInTransaction(ctx, db, func(ctx context.Context) error {
		if err := scratchInsert(ctx, db, "outer"); err != nil {
			return err
		}
		// The inner scope reuses the enclosing transaction rather than
		// opening a second one.
		return RunInTransaction(ctx, db, func(ctx context.Context) error {
			return scratchInsert(ctx, db, "inner")
		})
	})
	require.NoError(t, err)
	assert.Equal(t, 2, scratchCount(t, db))
}

func TestNestedFailureAbortsWholeTransaction(t *testing.T) {
	db := sessionTestDB(t)
	ctx := context.Background()
	boom := errors.New("inner failure")

	err := RunInTransaction(ctx, db, func(ctx context.Context) error {
		if err := scratchInsert(ctx, db, "outer"); err != nil {
			return err
		}
		return RunInTransaction(ctx, db, func(ctx context.Context) error {
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, scratchCount(t, db))
}

func TestRunInTransactionRollsBackOnCancellation(t *testing.T) {
	db := sessionTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := RunInTransaction(ctx, db, func(ctx context.Context) error {
		if err := scratchInsert(ctx, db, "a"); err != nil {
			return err
		}
		// Cancellation mid-scope fails the next statement; the scope
		// must then roll back the writes made before the cancel.
		cancel()
		return scratchInsert(ctx, db, "b")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, scratchCount(t, db))
}

func TestRunInTransactionRollsBackOnPanic(t *testing.T) {
	db := sessionTestDB(t)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = RunInTransaction(ctx, db, func(ctx context.Context) error {
			if err := scratchInsert(ctx, db, "a"); err != nil {
				return err
			}
			panic("kaboom")
		})
	})
	assert.Equal(t, 0, scratchCount(t, db))
}
