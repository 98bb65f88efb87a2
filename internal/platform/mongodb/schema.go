package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lexiglow/lexistore/internal/model"
)

// CollectionValidator renders the $jsonSchema validator for one entity
// definition: required fields, per-field bson types with null admitted
// on nullable fields, and enum domains. The single generated id maps to
// the document key _id; junction entities keep their composite fields
// and rely on a unique compound index instead.
func CollectionValidator(def model.Def) bson.M {
	properties := bson.M{}
	var required []string

	for _, f := range def.Fields {
		name := docField(def, f.Name)
		properties[name] = fieldSchema(f)
		if !f.Nullable {
			required = append(required, name)
		}
	}

	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   required,
			"properties": properties,
		},
	}
}

func fieldSchema(f model.Field) bson.M {
	types := []string{bsonType(f.Kind)}
	if f.Kind == model.KindInt {
		// The driver encodes Go ints as int32 or int64 by magnitude.
		types = []string{"int", "long"}
	}
	if f.Nullable {
		types = append(types, "null")
	}

	schema := bson.M{"bsonType": types}
	if len(f.Enum) > 0 {
		enum := make([]any, 0, len(f.Enum)+1)
		for _, v := range f.Enum {
			enum = append(enum, v)
		}
		if f.Nullable {
			enum = append(enum, nil)
		}
		schema = bson.M{"enum": enum}
	}
	return schema
}

func bsonType(k model.Kind) string {
	switch k {
	case model.KindInt:
		return "int"
	case model.KindFloat:
		return "double"
	case model.KindBool:
		return "bool"
	case model.KindTime:
		return "date"
	default:
		return "string"
	}
}

// docField maps a model field name to its document key. The generated
// primary id is stored as _id; composite junction keys keep their
// field names.
func docField(def model.Def, name string) string {
	if name == "id" && len(def.Key) == 1 && def.Key[0] == "id" {
		return "_id"
	}
	return name
}

// Indexes lists the index models for one entity definition: one unique
// index per declared uniqueness scope, a unique compound index
// enforcing a composite logical key, and a plain index per reference
// field for dependent scans.
func Indexes(def model.Def) []mongo.IndexModel {
	var models []mongo.IndexModel

	for _, u := range def.Uniques {
		keys := bson.D{}
		for _, f := range u.Fields {
			keys = append(keys, bson.E{Key: docField(def, f), Value: 1})
		}
		models = append(models, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetName(u.Name).SetUnique(true),
		})
	}

	if len(def.Key) > 1 {
		keys := bson.D{}
		for _, f := range def.Key {
			keys = append(keys, bson.E{Key: f, Value: 1})
		}
		models = append(models, mongo.IndexModel{
			Keys:    keys,
			Options: options.Index().SetName("uq_" + def.Entity + "_key").SetUnique(true),
		})
	}

	for _, r := range def.Refs {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: docField(def, r.Field), Value: 1}},
			Options: options.Index().SetName("ix_" + def.Entity + "_" + r.Field),
		})
	}

	return models
}

// EnsureSchema installs the collection validators and indexes for
// every entity in the model registry. Idempotent: existing collections
// get their validator refreshed through collMod, and index creation
// tolerates indexes that already exist with the same definition.
func EnsureSchema(ctx context.Context, db *mongo.Database) error {
	for _, def := range model.Definitions() {
		validator := CollectionValidator(def)

		err := db.CreateCollection(ctx, def.Entity,
			options.CreateCollection().SetValidator(validator))
		if err != nil {
			var ce mongo.CommandError
			// 48: NamespaceExists.
			if !errors.As(err, &ce) || ce.Code != 48 {
				return fmt.Errorf("creating collection %s: %w", def.Entity, err)
			}
			res := db.RunCommand(ctx, bson.D{
				{Key: "collMod", Value: def.Entity},
				{Key: "validator", Value: validator},
				{Key: "validationLevel", Value: "strict"},
			})
			if res.Err() != nil {
				return fmt.Errorf("updating validator for %s: %w", def.Entity, res.Err())
			}
		}

		if idx := Indexes(def); len(idx) > 0 {
			if _, err := db.Collection(def.Entity).Indexes().CreateMany(ctx, idx); err != nil {
				return fmt.Errorf("creating indexes for %s: %w", def.Entity, err)
			}
		}
	}
	return nil
}
