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

// chronological is the stable listing order shared by the document
// stores, mirroring the relational ORDER BY createdAt, id.
var chronological = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

// MongoUserStore implements store.UserStore on the document engine.
type MongoUserStore struct {
	coll   *mongo.Collection
	db     *mongo.Database
	logger *slog.Logger
}

// NewMongoUserStore creates the document UserStore.
func NewMongoUserStore(db *mongo.Database, log *slog.Logger) *MongoUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &MongoUserStore{
		coll:   db.Collection("User"),
		db:     db,
		logger: log.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*MongoUserStore)(nil)

// Create implements store.UserStore.Create. Language references are
// verified before the insert; the engine has no foreign keys, so the
// check is the only referential guard.
func (s *MongoUserStore) Create(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(draft)
	if err != nil {
		log.Warn("user validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	err = RunSequence(ctx, []Step{
		{Name: "check User references", Fn: func(ctx context.Context) error {
			return model.CheckReferences(ctx, refChecker{s.db}, "User", model.UserReferences(user))
		}},
		{Name: "insert User", Fn: func(ctx context.Context) error {
			_, err := s.coll.InsertOne(ctx, user)
			return mapError("User", err)
		}},
	})
	if err != nil {
		return nil, err
	}

	log.Info("user created",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))
	return user, nil
}

// GetByID implements store.UserStore.GetByID.
func (s *MongoUserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getWhere(ctx, bson.M{"_id": id})
}

// GetByEmail implements store.UserStore.GetByEmail.
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getWhere(ctx, bson.M{"email": email})
}

// GetByUsername implements store.UserStore.GetByUsername.
func (s *MongoUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getWhere(ctx, bson.M{"username": username})
}

func (s *MongoUserStore) getWhere(ctx context.Context, filter bson.M) (*domain.User, error) {
	var user domain.User
	if err := s.coll.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, mapError("User", err)
	}
	normalizeUser(&user)
	return &user, nil
}

// List implements store.UserStore.List.
func (s *MongoUserStore) List(ctx context.Context, opts store.ListOptions) ([]*domain.User, error) {
	opts = opts.Normalize()

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().
		SetSort(chronological).
		SetSkip(int64(opts.Offset)).
		SetLimit(int64(opts.Limit)))
	if err != nil {
		return nil, mapError("User", err)
	}
	defer cur.Close(ctx)

	users := []*domain.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, mapError("User", err)
	}
	for _, user := range users {
		normalizeUser(user)
	}
	return users, nil
}

// Update implements store.UserStore.Update. This engine has no update
// trigger, so updatedAt is stamped explicitly on every update.
func (s *MongoUserStore) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Apply(patch)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	err = RunSequence(ctx, []Step{
		{Name: "check User references", Fn: func(ctx context.Context) error {
			return model.CheckReferences(ctx, refChecker{s.db}, "User", model.UserReferences(user))
		}},
		{Name: "update User", Fn: func(ctx context.Context) error {
			user.UpdatedAt = domain.Now()
			_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, user)
			return mapError("User", err)
		}},
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete implements store.UserStore.Delete. The delete sequence
// cascades the user's UserLanguage and UserVocabulary dependents (and
// transitively the vocabulary items) and nulls the author reference on
// the user's texts.
func (s *MongoUserStore) Delete(ctx context.Context, id string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deleteByID(ctx, s.db, "User", id); err != nil {
		return err
	}

	log.Info("user deleted", slog.String("user_id", id))
	return nil
}

func normalizeUser(user *domain.User) {
	user.CreatedAt = user.CreatedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()
	if user.LastActiveAt != nil {
		t := user.LastActiveAt.UTC()
		user.LastActiveAt = &t
	}
}
