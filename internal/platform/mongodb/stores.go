package mongodb

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lexiglow/lexistore/internal/store"
)

// NewStores bundles the document engine's repository implementations
// behind the uniform contract.
func NewStores(db *mongo.Database, log *slog.Logger) *store.Stores {
	return &store.Stores{
		Languages:       NewMongoLanguageStore(db, log),
		Users:           NewMongoUserStore(db, log),
		UserLanguages:   NewMongoUserLanguageStore(db, log),
		Texts:           NewMongoTextStore(db, log),
		TextTags:        NewMongoTextTagStore(db, log),
		Vocabularies:    NewMongoUserVocabularyStore(db, log),
		VocabularyItems: NewMongoUserVocabularyItemStore(db, log),
	}
}
