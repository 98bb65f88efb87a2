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

// MongoTextTagStore implements store.TextTagStore on the document
// engine.
type MongoTextTagStore struct {
	coll   *mongo.Collection
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoTextTagStore creates the document TextTagStore.
func NewMongoTextTagStore(db *mongo.Database, log *slog.Logger) *MongoTextTagStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MongoTextTagStore{
		coll:   db.Collection("TextTag"),
		db:     db,
		logger: log.With(slog.String("component", "text_tag_store")),
	}
}

var _ store.TextTagStore = (*MongoTextTagStore)(nil)

// Create implements store.TextTagStore.Create.
func (s *MongoTextTagStore) Create(ctx context.Context, draft domain.TextTagDraft) (*domain.TextTag, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tag, err := domain.NewTextTag(draft)
	if err != nil {
		return nil, err
	}

	if _, err := s.coll.InsertOne(ctx, tag); err != nil {
		return nil, mapError("TextTag", err)
	}

	log.Info("text tag created",
		slog.String("tag_id", tag.ID),
		slog.String("name", tag.Name))
	return tag, nil
}

// GetByID implements store.TextTagStore.GetByID.
func (s *MongoTextTagStore) GetByID(ctx context.Context, id string) (*domain.TextTag, error) {
	return s.getWhere(ctx, bson.M{"_id": id})
}

// GetByName implements store.TextTagStore.GetByName.
func (s *MongoTextTagStore) GetByName(ctx context.Context, name string) (*domain.TextTag, error) {
	return s.getWhere(ctx, bson.M{"name": name})
}

func (s *MongoTextTagStore) getWhere(ctx context.Context, filter bson.M) (*domain.TextTag, error) {
	var tag domain.TextTag
	if err := s.coll.FindOne(ctx, filter).Decode(&tag); err != nil {
		return nil, mapError("TextTag", err)
	}
	return &tag, nil
}

// List implements store.TextTagStore.List. Tags have no timestamps, so
// they list in name order.
func (s *MongoTextTagStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.TextTag, error) {
	opts = opts.Normalize()

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, mapError("TextTag", err)
	}
	defer cur.Close(ctx)

	tags := []*domain.TextTag{}
	if err := cur.All(ctx, &tags); err != nil {
		return nil, mapError("TextTag", err)
	}
	return tags, nil
}

// Update implements store.TextTagStore.Update.
func (s *MongoTextTagStore) Update(ctx context.Context, id string, patch domain.TextTagPatch) (*domain.TextTag, error) {
	tag, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	tag.Apply(patch)
	if err := tag.Validate(); err != nil {
		return nil, err
	}

	_, err = s.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":        tag.Name,
		"description": tag.Description,
	}})
	if err != nil {
		return nil, mapError("TextTag", err)
	}
	return tag, nil
}

// Delete implements store.TextTagStore.Delete. The delete sequence
// removes the tag's association documents; the texts themselves are
// untouched.
func (s *MongoTextTagStore) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, s.db, "TextTag", id)
}
