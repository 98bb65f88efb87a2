package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lexiglow/lexistore/internal/model"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/store"
)

// txKey carries the open transaction in the context so nested scopes
// can find and reuse it.
type txKey struct{}

// TxFn executes within a transaction scope. The received context
// carries the transaction; statements issued through ext(ctx, db) run
// on it.
type TxFn func(ctx context.Context) error

// RunInTransaction executes fn within a transaction scope. On scope
// exit the transaction commits if fn returned nil and rolls back
// otherwise (including on panic and on context cancellation, which
// fails the pending statement and propagates as an error).
//
// Nested scopes do not open nested transactions: the engine supports
// a single active transaction on its one writer connection. An inner
// scope runs on the enclosing transaction and only the outermost scope
// commits or rolls back; an inner failure propagates outward and
// aborts the whole transaction rather than silently continuing.
func RunInTransaction(ctx context.Context, db *sqlx.DB, fn TxFn) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return fn(ctx)
	}

	log := logger.FromContext(ctx)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", store.ErrUnavailable, err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("rolling back transaction after panic",
					slog.Any("panic", p),
					slog.String("rollback_error", rbErr.Error()))
			}
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("rolling back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", store.ErrUnavailable, err)
	}
	return nil
}

// ext returns the statement executor for ctx: the enclosing
// transaction when one is open, the shared connection otherwise.
// Store methods issue every statement through this, so the same method
// works standalone and inside a caller's transaction scope.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx, ok := ctx.Value(txKey{}).(*sqlx.Tx); ok {
		return tx
	}
	return db
}

// refChecker verifies reference existence with reads that run inside
// the enclosing transaction, so a create can reference a row written
// earlier in the same scope.
type refChecker struct {
	db *sqlx.DB
}

var _ model.ReferenceChecker = refChecker{}

func (c refChecker) Exists(ctx context.Context, entity, id string) (bool, error) {
	if _, ok := model.Lookup(entity); !ok {
		return false, fmt.Errorf("unknown entity %q", entity)
	}
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE "id" = ?)`, quote(entity))
	if err := sqlx.GetContext(ctx, ext(ctx, c.db), &exists, query, id); err != nil {
		return false, mapError(entity, false, err)
	}
	return exists, nil
}

// restrictDelete returns a conflict when any dependent with a RESTRICT
// policy still references the entity. The native foreign keys enforce
// the same rule; checking first lets both engines surface an identical,
// dependent-naming error.
func restrictDelete(ctx context.Context, db *sqlx.DB, entity, id string) error {
	for _, dep := range model.DependentsOf(entity) {
		if dep.Ref.OnDelete != model.Restrict {
			continue
		}
		var exists bool
		query := fmt.Sprintf(
			`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = ?)`,
			quote(dep.Def.Entity), quote(dep.Ref.Field),
		)
		if err := sqlx.GetContext(ctx, ext(ctx, db), &exists, query, id); err != nil {
			return mapError(entity, true, err)
		}
		if exists {
			return store.NewRestrictedDeleteError(entity, dep.Def.Entity)
		}
	}
	return nil
}
