package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/store"
)

// MongoLanguageStore implements store.LanguageStore on the document
// engine.
type MongoLanguageStore struct {
	coll   *mongo.Collection
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoLanguageStore creates the document LanguageStore.
func NewMongoLanguageStore(db *mongo.Database, log *slog.Logger) *MongoLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MongoLanguageStore{
		coll:   db.Collection("Language"),
		db:     db,
		logger: log.With(slog.String("component", "language_store")),
	}
}

var _ store.LanguageStore = (*MongoLanguageStore)(nil)

// Create implements store.LanguageStore.Create.
func (s *MongoLanguageStore) Create(ctx context.Context, draft domain.LanguageDraft) (*domain.Language, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lang, err := domain.NewLanguage(draft)
	if err != nil {
		return nil, err
	}

	if _, err := s.coll.InsertOne(ctx, lang); err != nil {
		return nil, mapError("Language", err)
	}

	log.Info("language created",
		slog.String("language_id", lang.ID),
		slog.String("code", lang.Code))
	return lang, nil
}

// GetByID implements store.LanguageStore.GetByID.
func (s *MongoLanguageStore) GetByID(ctx context.Context, id string) (*domain.Language, error) {
	return s.getWhere(ctx, bson.M{"_id": id})
}

// GetByCode implements store.LanguageStore.GetByCode.
func (s *MongoLanguageStore) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	return s.getWhere(ctx, bson.M{"code": code})
}

func (s *MongoLanguageStore) getWhere(ctx context.Context, filter bson.M) (*domain.Language, error) {
	var lang domain.Language
	if err := s.coll.FindOne(ctx, filter).Decode(&lang); err != nil {
		return nil, mapError("Language", err)
	}
	normalizeLanguage(&lang)
	return &lang, nil
}

// List implements store.LanguageStore.List.
func (s *MongoLanguageStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.Language, error) {
	opts = opts.Normalize()

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(chronological).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, mapError("Language", err)
	}
	defer cur.Close(ctx)

	langs := []*domain.Language{}
	if err := cur.All(ctx, &langs); err != nil {
		return nil, mapError("Language", err)
	}
	for _, lang := range langs {
		normalizeLanguage(lang)
	}
	return langs, nil
}

// Update implements store.LanguageStore.Update. The language code is
// immutable; only display metadata is patchable.
func (s *MongoLanguageStore) Update(ctx context.Context, id string, patch domain.LanguagePatch) (*domain.Language, error) {
	lang, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	lang.Apply(patch)
	if err := lang.Validate(); err != nil {
		return nil, err
	}

	_, err = s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":       lang.Name,
		"nativeName": lang.NativeName,
	}})
	if err != nil {
		return nil, mapError("Language", err)
	}
	return lang, nil
}

// Delete implements store.LanguageStore.Delete. Users, Texts, and
// UserVocabularies restrict the delete; UserLanguage associations are
// cascaded by the delete sequence.
func (s *MongoLanguageStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deleteByID(ctx, s.db, "Language", id); err != nil {
		return err
	}

	log.Info("language deleted", slog.String("language_id", id))
	return nil
}

// normalizeLanguage rebinds decoded timestamps to UTC. The driver
// decodes BSON datetimes in the local zone; both engines hand back UTC.
func normalizeLanguage(lang *domain.Language) {
	lang.CreatedAt = lang.CreatedAt.UTC()
}
