package sqlite

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if necessary) the SQLite database at path and
// configures it for this layer: foreign keys on, a busy timeout so
// writers queue instead of failing, and a single connection because the
// file supports one writer at a time. Concurrent write requests
// serialize at this connection; callers never hold it across
// suspension points. Use ":memory:" for an ephemeral database.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database %s: %w", path, err)
	}

	// One shared writer connection. This also keeps an in-memory
	// database alive for its whole lifetime: every session sees the
	// same connection, so the schema never vanishes mid-test.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}
