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

// MongoUserLanguageStore implements store.UserLanguageStore on the
// document engine. Documents carry a driver-generated _id; the logical
// (userId, languageId) key is enforced by a unique compound index.
type MongoUserLanguageStore struct {
	coll   *mongo.Collection
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoUserLanguageStore creates the document UserLanguageStore.
func NewMongoUserLanguageStore(db *mongo.Database, log *slog.Logger) *MongoUserLanguageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MongoUserLanguageStore{
		coll:   db.Collection("UserLanguage"),
		db:     db,
		logger: log.With(slog.String("component", "user_language_store")),
	}
}

var _ store.UserLanguageStore = (*MongoUserLanguageStore)(nil)

func keyFilter(userID, languageID string) bson.M {
	return bson.M{"userId": userID, "languageId": languageID}
}

// Create implements store.UserLanguageStore.Create.
func (s *MongoUserLanguageStore) Create(ctx context.Context, draft domain.UserLanguageDraft) (*domain.UserLanguage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ul, err := domain.NewUserLanguage(draft)
	if err != nil {
		return nil, err
	}

	err = RunSequence(ctx, []Step{
		{Name: "check UserLanguage references", Fn: func(ctx context.Context) error {
			return model.CheckReferences(ctx, refChecker{s.db}, "UserLanguage", model.UserLanguageReferences(ul))
		}},
		{Name: "insert UserLanguage", Fn: func(ctx context.Context) error {
			_, err := s.coll.InsertOne(ctx, ul)
			return mapError("UserLanguage", err)
		}},
	})
	if err != nil {
		return nil, err
	}

	log.Info("user language created",
		slog.String("user_id", ul.UserID),
		slog.String("language_id", ul.LanguageID))
	return ul, nil
}

// Get implements store.UserLanguageStore.Get.
func (s *MongoUserLanguageStore) Get(ctx context.Context, userID, languageID string) (*domain.UserLanguage, error) {
	var ul domain.UserLanguage
	if err := s.coll.FindOne(ctx, keyFilter(userID, languageID)).Decode(&ul); err != nil {
		return nil, mapError("UserLanguage", err)
	}
	normalizeUserLanguage(&ul)
	return &ul, nil
}

// ListByUser implements store.UserLanguageStore.ListByUser. Listing
// orders by (createdAt, languageId) to match the relational engine.
func (s *MongoUserLanguageStore) ListByUser(ctx context.Context, userID string, opts store.ListOptions) ([]*domain.UserLanguage, error) {
	opts = opts.Normalize()

	cur, err := s.coll.Find(ctx, bson.M{"userId": userID}, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "languageId", Value: 1}}).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, mapError("UserLanguage", err)
	}
	defer cur.Close(ctx)

	uls := []*domain.UserLanguage{}
	if err := cur.All(ctx, &uls); err != nil {
		return nil, mapError("UserLanguage", err)
	}
	for _, ul := range uls {
		normalizeUserLanguage(ul)
	}
	return uls, nil
}

// Update implements store.UserLanguageStore.Update.
func (s *MongoUserLanguageStore) Update(ctx context.Context, userID, languageID string, patch domain.UserLanguagePatch) (*domain.UserLanguage, error) {
	ul, err := s.Get(ctx, userID, languageID)
	if err != nil {
		return nil, err
	}

	ul.Apply(patch)
	if err := ul.Validate(); err != nil {
		return nil, err
	}

	ul.UpdatedAt = domain.Now()
	_, err = s.coll.UpdateOne(ctx, keyFilter(userID, languageID), bson.M{"$set": bson.M{
		"proficiencyLevel": ul.ProficiencyLevel,
		"startedAt":        ul.StartedAt,
		"updatedAt":        ul.UpdatedAt,
	}})
	if err != nil {
		return nil, mapError("UserLanguage", err)
	}
	return ul, nil
}

// Delete implements store.UserLanguageStore.Delete. Nothing references
// the association, so the delete is a single step.
func (s *MongoUserLanguageStore) Delete(ctx context.Context, userID, languageID string) error {
	res, err := s.coll.DeleteOne(ctx, keyFilter(userID, languageID))
	if err != nil {
		return mapError("UserLanguage", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrUserLanguageNotFound
	}
	return nil
}

func normalizeUserLanguage(ul *domain.UserLanguage) {
	ul.StartedAt = ul.StartedAt.UTC()
	ul.CreatedAt = ul.CreatedAt.UTC()
	ul.UpdatedAt = ul.UpdatedAt.UTC()
}
