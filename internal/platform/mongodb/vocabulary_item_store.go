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

// MongoUserVocabularyItemStore implements store.UserVocabularyItemStore
// on the document engine.
type MongoUserVocabularyItemStore struct {
	coll   *mongo.Collection
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoUserVocabularyItemStore creates the document
// UserVocabularyItemStore.
func NewMongoUserVocabularyItemStore(db *mongo.Database, log *slog.Logger) *MongoUserVocabularyItemStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MongoUserVocabularyItemStore{
		coll:   db.Collection("UserVocabularyItem"),
		db:     db,
		logger: log.With(slog.String("component", "vocabulary_item_store")),
	}
}

var _ store.UserVocabularyItemStore = (*MongoUserVocabularyItemStore)(nil)

// Create implements store.UserVocabularyItemStore.Create. The unique
// (userVocabularyId, term) index keeps terms unique within their
// vocabulary.
func (s *MongoUserVocabularyItemStore) Create(ctx context.Context, draft domain.UserVocabularyItemDraft) (*domain.UserVocabularyItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := domain.NewUserVocabularyItem(draft)
	if err != nil {
		return nil, err
	}

	err = RunSequence(ctx, []Step{
		{Name: "check UserVocabularyItem references", Fn: func(ctx context.Context) error {
			return model.CheckReferences(ctx, refChecker{s.db}, "UserVocabularyItem", model.UserVocabularyItemReferences(item))
		}},
		{Name: "insert UserVocabularyItem", Fn: func(ctx context.Context) error {
			_, err := s.coll.InsertOne(ctx, item)
			return mapError("UserVocabularyItem", err)
		}},
	})
	if err != nil {
		return nil, err
	}

	log.Info("vocabulary item created",
		slog.String("item_id", item.ID),
		slog.String("vocabulary_id", item.UserVocabularyID))
	return item, nil
}

// GetByID implements store.UserVocabularyItemStore.GetByID.
func (s *MongoUserVocabularyItemStore) GetByID(ctx context.Context, id string) (*domain.UserVocabularyItem, error) {
	var item domain.UserVocabularyItem
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		return nil, mapError("UserVocabularyItem", err)
	}
	normalizeItem(&item)
	return &item, nil
}

// ListByVocabulary implements
// store.UserVocabularyItemStore.ListByVocabulary.
func (s *MongoUserVocabularyItemStore) ListByVocabulary(ctx context.Context, vocabularyID string, filter store.VocabularyItemFilter, opts store.ListOptions) ([]*domain.UserVocabularyItem, error) {
	opts = opts.Normalize()

	query := bson.M{"userVocabularyId": vocabularyID}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	cur, err := s.coll.Find(ctx, query, options.Find().
		SetSort(chronological).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, mapError("UserVocabularyItem", err)
	}
	defer cur.Close(ctx)

	items := []*domain.UserVocabularyItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, mapError("UserVocabularyItem", err)
	}
	for _, item := range items {
		normalizeItem(item)
	}
	return items, nil
}

// Update implements store.UserVocabularyItemStore.Update. updatedAt is
// stamped explicitly on every update.
func (s *MongoUserVocabularyItemStore) Update(ctx context.Context, id string, patch domain.UserVocabularyItemPatch) (*domain.UserVocabularyItem, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Apply(patch)
	if err := item.Validate(); err != nil {
		return nil, err
	}

	item.UpdatedAt = domain.Now()
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, item); err != nil {
		return nil, mapError("UserVocabularyItem", err)
	}
	return item, nil
}

// Delete implements store.UserVocabularyItemStore.Delete. Nothing
// references an item, so the delete is a single step.
func (s *MongoUserVocabularyItemStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError("UserVocabularyItem", err)
	}
	if res.DeletedCount == 0 {
		return store.ErrUserVocabularyItemNotFound
	}
	return nil
}

func normalizeItem(item *domain.UserVocabularyItem) {
	item.CreatedAt = item.CreatedAt.UTC()
	item.UpdatedAt = item.UpdatedAt.UTC()
}
