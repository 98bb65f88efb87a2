package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lexiglow/lexistore/internal/model"
	"github.com/lexiglow/lexistore/internal/store"
)

func TestMapErrorTranslation(t *testing.T) {
	assert.NoError(t, mapError("User", false, nil))

	// Context errors pass through untranslated so callers can tell a
	// cancellation from an engine failure.
	assert.ErrorIs(t, mapError("User", false, context.Canceled), context.Canceled)
	assert.ErrorIs(t, mapError("User", false, context.DeadlineExceeded), context.DeadlineExceeded)

	assert.ErrorIs(t, mapError("User", false, sql.ErrNoRows), store.ErrUserNotFound)
	assert.ErrorIs(t, mapError("Text", false, sql.ErrNoRows), store.ErrTextNotFound)
	assert.ErrorIs(t, mapError("UserLanguage", false, sql.ErrNoRows), store.ErrUserLanguageNotFound)

	assert.ErrorIs(t, mapError("User", false, driver.ErrBadConn), store.ErrUnavailable)

	// Unknown errors pass through for the caller to inspect.
	opaque := errors.New("something else")
	assert.ErrorIs(t, mapError("User", false, opaque), opaque)
}

func TestNotFoundForUnknownEntity(t *testing.T) {
	assert.ErrorIs(t, notFoundFor("Widget"), store.ErrNotFound)
}

func TestEveryUniqueScopeHasAConflictMapping(t *testing.T) {
	// Each declared uniqueness scope must translate to a dedicated
	// conflict error; SQLite names the first column of the violated
	// constraint, so the map is keyed by "Entity.firstColumn".
	for _, def := range model.Definitions() {
		for _, u := range def.Uniques {
			key := def.Entity + "." + u.Fields[0]
			_, ok := uniqueScopes[key]
			assert.True(t, ok, "no conflict mapping for uniqueness scope %s", key)
		}
	}
}

func TestEveryEntityHasANotFoundMapping(t *testing.T) {
	for _, def := range model.Definitions() {
		if def.Entity == "TextTagAssociation" {
			// Association rows are reached only through their text.
			continue
		}
		_, ok := notFoundErrs[def.Entity]
		assert.True(t, ok, "no not-found mapping for %s", def.Entity)
	}
}
