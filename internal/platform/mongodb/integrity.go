package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/model"
	"github.com/lexiglow/lexistore/internal/store"
)

// refChecker verifies reference existence against the live
// collections.
type refChecker struct {
	db *mongo.Database
}

var _ model.ReferenceChecker = refChecker{}

func (c refChecker) Exists(ctx context.Context, entity, id string) (bool, error) {
	if _, ok := model.Lookup(entity); !ok {
		return false, fmt.Errorf("unknown entity %q", entity)
	}
	err := c.db.Collection(entity).FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return false, mapError(entity, err)
}

// checkRestricts walks the delete subtree before any mutation: a
// RESTRICT dependent anywhere under the target (directly, or under a
// CASCADE branch) aborts the whole delete up front, so a failed delete
// never leaves a partially settled tree behind.
func checkRestricts(ctx context.Context, db *mongo.Database, entity string, filter bson.M) error {
	deps := model.DependentsOf(entity)
	if len(deps) == 0 {
		return nil
	}
	ids, err := collectIDs(ctx, db, entity, filter)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	for _, dep := range deps {
		depFilter := bson.M{docField(dep.Def, dep.Ref.Field): bson.M{"$in": ids}}
		switch dep.Ref.OnDelete {
		case model.Restrict:
			n, err := db.Collection(dep.Def.Entity).CountDocuments(ctx, depFilter,
				options.Count().SetLimit(1))
			if err != nil {
				return mapError(entity, err)
			}
			if n > 0 {
				return store.NewRestrictedDeleteError(entity, dep.Def.Entity)
			}
		case model.Cascade:
			if err := checkRestricts(ctx, db, dep.Def.Entity, depFilter); err != nil {
				return err
			}
		}
	}
	return nil
}

// settleDependents applies the delete policies for the documents
// matching filter, dependents first: CASCADE branches recurse so
// grandchildren go before children, SET NULL rewrites the referencing
// field, and only then are the matching documents themselves removed.
// Callers must run checkRestricts first.
func settleDependents(ctx context.Context, db *mongo.Database, entity string, filter bson.M) error {
	deps := model.DependentsOf(entity)
	if len(deps) > 0 {
		ids, err := collectIDs(ctx, db, entity, filter)
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			for _, dep := range deps {
				depFilter := bson.M{docField(dep.Def, dep.Ref.Field): bson.M{"$in": ids}}
				switch dep.Ref.OnDelete {
				case model.Cascade:
					if err := settleDependents(ctx, db, dep.Def.Entity, depFilter); err != nil {
						return err
					}
				case model.SetNull:
					set := bson.M{docField(dep.Def, dep.Ref.Field): nil}
					if dep.Def.HasUpdatedAt() {
						set["updatedAt"] = domain.Now()
					}
					_, err := db.Collection(dep.Def.Entity).UpdateMany(ctx, depFilter, bson.M{"$set": set})
					if err != nil {
						return mapError(dep.Def.Entity, err)
					}
				}
			}
		}
	}

	if _, err := db.Collection(entity).DeleteMany(ctx, filter); err != nil {
		return mapError(entity, err)
	}
	return nil
}

// deleteByID removes one identified document under the entity's
// declared delete policies, as an ordered sequence: existence check,
// restrict checks over the whole subtree, then dependents-first
// settlement.
func deleteByID(ctx context.Context, db *mongo.Database, entity, id string) error {
	filter := bson.M{"_id": id}
	return RunSequence(ctx, []Step{
		{Name: "check " + entity + " exists", Fn: func(ctx context.Context) error {
			err := db.Collection(entity).FindOne(ctx, filter,
				options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
			return mapError(entity, err)
		}},
		{Name: "check restrict dependents of " + entity, Fn: func(ctx context.Context) error {
			return checkRestricts(ctx, db, entity, filter)
		}},
		{Name: "settle dependents and delete " + entity, Fn: func(ctx context.Context) error {
			return settleDependents(ctx, db, entity, filter)
		}},
	})
}

// collectIDs lists the _id values of the documents matching filter.
// Only single-key entities participate in dependency subtrees; the
// composite-key junctions have no dependents of their own.
func collectIDs(ctx context.Context, db *mongo.Database, entity string, filter bson.M) ([]string, error) {
	cur, err := db.Collection(entity).Find(ctx, filter,
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, mapError(entity, err)
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mapError(entity, err)
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}
