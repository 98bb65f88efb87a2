package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiglow/lexistore/internal/model"
)

func defFor(t *testing.T, entity string) model.Def {
	t.Helper()
	def, ok := model.Lookup(entity)
	require.True(t, ok)
	return def
}

func TestTableDDLRendersConstraints(t *testing.T) {
	ddl := TableDDL(defFor(t, "User"))

	assert.Contains(t, ddl, `CREATE TABLE IF NOT EXISTS "User"`)
	assert.Contains(t, ddl, `"email" TEXT NOT NULL`)
	assert.Contains(t, ddl, `"lastActiveAt" DATETIME`)
	assert.NotContains(t, ddl, `"lastActiveAt" DATETIME NOT NULL`)
	assert.Contains(t, ddl, `PRIMARY KEY ("id")`)
	assert.Contains(t, ddl, `CONSTRAINT "uq_User_email" UNIQUE ("email")`)
	assert.Contains(t, ddl, `CONSTRAINT "uq_User_username" UNIQUE ("username")`)
	assert.Contains(t, ddl, `FOREIGN KEY ("nativeLanguageId") REFERENCES "Language" ("id") ON DELETE RESTRICT`)
}

func TestTableDDLDeletePolicies(t *testing.T) {
	ddl := TableDDL(defFor(t, "Text"))
	assert.Contains(t, ddl, `FOREIGN KEY ("languageId") REFERENCES "Language" ("id") ON DELETE RESTRICT`)
	assert.Contains(t, ddl, `FOREIGN KEY ("userId") REFERENCES "User" ("id") ON DELETE SET NULL`)

	ddl = TableDDL(defFor(t, "UserLanguage"))
	assert.Contains(t, ddl, `PRIMARY KEY ("userId", "languageId")`)
	assert.Contains(t, ddl, `FOREIGN KEY ("userId") REFERENCES "User" ("id") ON DELETE CASCADE`)
}

func TestTableDDLEnumChecks(t *testing.T) {
	ddl := TableDDL(defFor(t, "UserVocabularyItem"))
	assert.Contains(t, ddl, `"status" TEXT NOT NULL CHECK ("status" IN ('NEW', 'LEARNING', 'KNOWN', 'MASTERED'))`)
	assert.Contains(t, ddl, `"confidenceLevel" TEXT NOT NULL CHECK ("confidenceLevel" IN ('A1', 'A2', 'B1', 'B2', 'C1', 'C2'))`)
	assert.Contains(t, ddl, `CONSTRAINT "uq_UserVocabularyItem_vocab_term" UNIQUE ("userVocabularyId", "term")`)
}

func TestTriggerDDL(t *testing.T) {
	trg := TriggerDDL(defFor(t, "User"))
	assert.Contains(t, trg, `CREATE TRIGGER IF NOT EXISTS "trg_User_updatedAt"`)
	assert.Contains(t, trg, `AFTER UPDATE ON "User"`)
	assert.Contains(t, trg, `WHEN NEW."updatedAt" = OLD."updatedAt"`)

	// Composite-key entities match on the whole key.
	trg = TriggerDDL(defFor(t, "UserLanguage"))
	assert.Contains(t, trg, `"userId" = NEW."userId" AND "languageId" = NEW."languageId"`)

	// Entities without updatedAt get no trigger.
	assert.Empty(t, TriggerDDL(defFor(t, "Language")))
	assert.Empty(t, TriggerDDL(defFor(t, "TextTag")))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	var count int
	err = db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	require.NoError(t, err)
	assert.Equal(t, len(model.Definitions()), count)

	err = db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'trigger'`)
	require.NoError(t, err)

	var withUpdatedAt int
	for _, def := range model.Definitions() {
		if def.HasUpdatedAt() {
			withUpdatedAt++
		}
	}
	assert.Equal(t, withUpdatedAt, count)
}
