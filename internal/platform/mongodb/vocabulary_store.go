package mongodb

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/model"
	"github.com/lexiglow/lexistore/internal/platform/logger"
	"github.com/lexiglow/lexistore/internal/store"
)

// MongoUserVocabularyStore implements store.UserVocabularyStore on the
// document engine.
type MongoUserVocabularyStore struct {
	coll   *mongo.Collection
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoUserVocabularyStore creates the document UserVocabularyStore.
func NewMongoUserVocabularyStore(db *mongo.Database, log *slog.Logger) *MongoUserVocabularyStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MongoUserVocabularyStore{
		coll:   db.Collection("UserVocabulary"),
		db:     db,
		logger: log.With(slog.String("component", "vocabulary_store")),
	}
}

var _ store.UserVocabularyStore = (*MongoUserVocabularyStore)(nil)

// Create implements store.UserVocabularyStore.Create. The unique
// (userId, languageId) index enforces the one-vocabulary-per-language
// rule.
func (s *MongoUserVocabularyStore) Create(ctx context.Context, draft domain.UserVocabularyDraft) (*domain.UserVocabulary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	vocab, err := domain.NewUserVocabulary(draft)
	if err != nil {
		return nil, err
	}

	err = RunSequence(ctx, []Step{
		{Name: "check UserVocabulary references", Fn: func(ctx context.Context) error {
			return model.CheckReferences(ctx, refChecker{s.db}, "UserVocabulary", model.UserVocabularyReferences(vocab))
		}},
		{Name: "insert UserVocabulary", Fn: func(ctx context.Context) error {
			_, err := s.coll.InsertOne(ctx, vocab)
			return mapError("UserVocabulary", err)
		}},
	})
	if err != nil {
		return nil, err
	}

	log.Info("vocabulary created",
		slog.String("vocabulary_id", vocab.ID),
		slog.String("user_id", vocab.UserID),
		slog.String("language_id", vocab.LanguageID))
	return vocab, nil
}

// GetByID implements store.UserVocabularyStore.GetByID.
func (s *MongoUserVocabularyStore) GetByID(ctx context.Context, id string) (*domain.UserVocabulary, error) {
	return s.getWhere(ctx, bson.M{"_id": id})
}

// GetByUserAndLanguage implements
// store.UserVocabularyStore.GetByUserAndLanguage.
func (s *MongoUserVocabularyStore) GetByUserAndLanguage(ctx context.Context, userID, languageID string) (*domain.UserVocabulary, error) {
	return s.getWhere(ctx, bson.M{"userId": userID, "languageId": languageID})
}

func (s *MongoUserVocabularyStore) getWhere(ctx context.Context, filter bson.M) (*domain.UserVocabulary, error) {
	var vocab domain.UserVocabulary
	if err := s.coll.FindOne(ctx, filter).Decode(&vocab); err != nil {
		return nil, mapError("UserVocabulary", err)
	}
	normalizeVocabulary(&vocab)
	return &vocab, nil
}

// ListByUser implements store.UserVocabularyStore.ListByUser.
func (s *MongoUserVocabularyStore) ListByUser(ctx context.Context, userID string, opts store.ListOptions) ([]*domain.UserVocabulary, error) {
	opts = opts.Normalize()

	cur, err := s.coll.Find(ctx, bson.M{"userId": userID}, options.Find().
		SetSort(chronological).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, mapError("UserVocabulary", err)
	}
	defer cur.Close(ctx)

	vocabs := []*domain.UserVocabulary{}
	if err := cur.All(ctx, &vocabs); err != nil {
		return nil, mapError("UserVocabulary", err)
	}
	for _, vocab := range vocabs {
		normalizeVocabulary(vocab)
	}
	return vocabs, nil
}

// Update implements store.UserVocabularyStore.Update. Only the display
// name is patchable; updatedAt is stamped explicitly.
func (s *MongoUserVocabularyStore) Update(ctx context.Context, id string, patch domain.UserVocabularyPatch) (*domain.UserVocabulary, error) {
	vocab, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	vocab.Apply(patch)
	if err := vocab.Validate(); err != nil {
		return nil, err
	}

	vocab.UpdatedAt = domain.Now()
	_, err = s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":      vocab.Name,
		"updatedAt": vocab.UpdatedAt,
	}})
	if err != nil {
		return nil, mapError("UserVocabulary", err)
	}
	return vocab, nil
}

// Delete implements store.UserVocabularyStore.Delete. The delete
// sequence cascades the vocabulary's items first.
func (s *MongoUserVocabularyStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deleteByID(ctx, s.db, "UserVocabulary", id); err != nil {
		return err
	}

	log.Info("vocabulary deleted", slog.String("vocabulary_id", id))
	return nil
}

func normalizeVocabulary(vocab *domain.UserVocabulary) {
	vocab.CreatedAt = vocab.CreatedAt.UTC()
	vocab.UpdatedAt = vocab.UpdatedAt.UTC()
}
