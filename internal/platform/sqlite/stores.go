package sqlite

import (
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/lexiglow/lexistore/internal/store"
)

// NewStores bundles the relational engine's repository implementations
// behind the uniform contract. All stores share the single writer
// connection and its transaction scope.
func NewStores(db *sqlx.DB, log *slog.Logger) *store.Stores {
	return &store.Stores{
		Languages:       NewSQLiteLanguageStore(db, log),
		Users:           NewSQLiteUserStore(db, log),
		UserLanguages:   NewSQLiteUserLanguageStore(db, log),
		Texts:           NewSQLiteTextStore(db, log),
		TextTags:        NewSQLiteTextTagStore(db, log),
		Vocabularies:    NewSQLiteUserVocabularyStore(db, log),
		VocabularyItems: NewSQLiteUserVocabularyItemStore(db, log),
	}
}
