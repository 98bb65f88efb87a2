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

// MongoTextStore implements store.TextStore on the document engine.
// Tag membership lives in the TextTagAssociation collection, mirroring
// the relational junction table rather than embedding the set, so both
// engines share one shape for the association and its delete policies.
type MongoTextStore struct {
	coll   *mongo.Collection
	assoc  *mongo.Collection
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoTextStore creates the document TextStore.
func NewMongoTextStore(db *mongo.Database, log *slog.Logger) *MongoTextStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MongoTextStore{
		coll:   db.Collection("Text"),
		assoc:  db.Collection("TextTagAssociation"),
		db:     db,
		logger: log.With(slog.String("component", "text_store")),
	}
}

var _ store.TextStore = (*MongoTextStore)(nil)

// Create implements store.TextStore.Create. The text document and its
// association documents are written as an ordered sequence: references
// first, the text next, associations last, so a partially applied
// sequence never leaves an association without its text.
func (s *MongoTextStore) Create(ctx context.Context, draft domain.TextDraft) (*domain.Text, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	text, err := domain.NewText(draft)
	if err != nil {
		return nil, err
	}

	err = RunSequence(ctx, []Step{
		{Name: "check Text references", Fn: func(ctx context.Context) error {
			return model.CheckReferences(ctx, refChecker{s.db}, "Text", model.TextReferences(text))
		}},
		{Name: "insert Text", Fn: func(ctx context.Context) error {
			_, err := s.coll.InsertOne(ctx, text)
			return mapError("Text", err)
		}},
		{Name: "insert Text tag associations", Fn: func(ctx context.Context) error {
			return s.insertTags(ctx, text.ID, text.TagIDs)
		}},
	})
	if err != nil {
		return nil, err
	}

	log.Info("text created",
		slog.String("text_id", text.ID),
		slog.String("language_id", text.LanguageID),
		slog.Int("word_count", text.WordCount))
	return text, nil
}

// GetByID implements store.TextStore.GetByID.
func (s *MongoTextStore) GetByID(ctx context.Context, id string) (*domain.Text, error) {
	var text domain.Text
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&text); err != nil {
		return nil, mapError("Text", err)
	}
	normalizeText(&text)
	if err := s.loadTags(ctx, []*domain.Text{&text}); err != nil {
		return nil, err
	}
	return &text, nil
}

// List implements store.TextStore.List. Tag membership filters through
// the association collection: the matching text ids are gathered first,
// then constrain the main query.
func (s *MongoTextStore) List(ctx context.Context, filter store.TextFilter, opts store.ListOptions) ([]*domain.Text, error) {
	opts = opts.Normalize()

	query := bson.M{}
	if filter.LanguageID != nil {
		query["languageId"] = *filter.LanguageID
	}
	if filter.AuthorID != nil {
		query["userId"] = *filter.AuthorID
	}
	if filter.Level != nil {
		query["proficiencyLevel"] = *filter.Level
	}
	if filter.PublicOnly {
		query["isPublic"] = true
	}
	if filter.TagID != nil {
		textIDs, err := s.textIDsWithTag(ctx, *filter.TagID)
		if err != nil {
			return nil, err
		}
		query["_id"] = bson.M{"$in": textIDs}
	}

	cur, err := s.coll.Find(ctx, query, options.Find().
		SetSort(chronological).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, mapError("Text", err)
	}
	defer cur.Close(ctx)

	texts := []*domain.Text{}
	if err := cur.All(ctx, &texts); err != nil {
		return nil, mapError("Text", err)
	}
	for _, text := range texts {
		normalizeText(text)
	}
	if err := s.loadTags(ctx, texts); err != nil {
		return nil, err
	}
	return texts, nil
}

// Update implements store.TextStore.Update. A patch carrying TagIDs
// replaces the association documents wholesale.
func (s *MongoTextStore) Update(ctx context.Context, id string, patch domain.TextPatch) (*domain.Text, error) {
	text, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	text.Apply(patch)
	if err := text.Validate(); err != nil {
		return nil, err
	}

	steps := []Step{
		{Name: "check Text references", Fn: func(ctx context.Context) error {
			return model.CheckReferences(ctx, refChecker{s.db}, "Text", model.TextReferences(text))
		}},
		{Name: "update Text", Fn: func(ctx context.Context) error {
			text.UpdatedAt = domain.Now()
			_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, text)
			return mapError("Text", err)
		}},
	}
	if patch.TagIDs != nil {
		steps = append(steps, Step{Name: "replace Text tag associations", Fn: func(ctx context.Context) error {
			if _, err := s.assoc.DeleteMany(ctx, bson.M{"textId": id}); err != nil {
				return mapError("Text", err)
			}
			return s.insertTags(ctx, id, text.TagIDs)
		}})
	}

	if err := RunSequence(ctx, steps); err != nil {
		return nil, err
	}
	return text, nil
}

// Delete implements store.TextStore.Delete. The delete sequence
// removes the association documents before the text.
func (s *MongoTextStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deleteByID(ctx, s.db, "Text", id); err != nil {
		return err
	}

	log.Info("text deleted", slog.String("text_id", id))
	return nil
}

func (s *MongoTextStore) insertTags(ctx context.Context, textID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	docs := make([]any, len(tagIDs))
	for i, tagID := range tagIDs {
		docs[i] = bson.M{"textId": textID, "tagId": tagID}
	}
	if _, err := s.assoc.InsertMany(ctx, docs); err != nil {
		return mapError("Text", err)
	}
	return nil
}

// textIDsWithTag lists the ids of texts associated with the given tag.
func (s *MongoTextStore) textIDsWithTag(ctx context.Context, tagID string) ([]string, error) {
	cur, err := s.assoc.Find(ctx, bson.M{"tagId": tagID},
		options.Find().SetProjection(bson.M{"textId": 1}))
	if err != nil {
		return nil, mapError("Text", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		TextID string `bson:"textId"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, mapError("Text", err)
	}
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.TextID
	}
	return ids, nil
}

// loadTags populates TagIDs on the given texts with one batched query.
// Associations come back in tag-id order to match the sorted-set
// representation on the entity.
func (s *MongoTextStore) loadTags(ctx context.Context, texts []*domain.Text) error {
	if len(texts) == 0 {
		return nil
	}

	ids := make([]string, len(texts))
	byID := make(map[string]*domain.Text, len(texts))
	for i, t := range texts {
		ids[i] = t.ID
		byID[t.ID] = t
		t.TagIDs = nil
	}

	cur, err := s.assoc.Find(ctx, bson.M{"textId": bson.M{"$in": ids}},
		options.Find().SetSort(bson.D{{Key: "tagId", Value: 1}}))
	if err != nil {
		return mapError("Text", err)
	}
	defer cur.Close(ctx)

	var rows []struct {
		TextID string `bson:"textId"`
		TagID  string `bson:"tagId"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return mapError("Text", err)
	}
	for _, row := range rows {
		byID[row.TextID].TagIDs = append(byID[row.TextID].TagIDs, row.TagID)
	}
	return nil
}

func normalizeText(text *domain.Text) {
	text.CreatedAt = text.CreatedAt.UTC()
	text.UpdatedAt = text.UpdatedAt.UTC()
}
