package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/lexiglow/lexistore/internal/model"
)

func defFor(t *testing.T, entity string) model.Def {
	t.Helper()
	def, ok := model.Lookup(entity)
	require.True(t, ok)
	return def
}

func jsonSchema(t *testing.T, def model.Def) bson.M {
	t.Helper()
	validator := CollectionValidator(def)
	schema, ok := validator["$jsonSchema"].(bson.M)
	require.True(t, ok)
	return schema
}

func TestCollectionValidatorMapsIDToDocumentKey(t *testing.T) {
	schema := jsonSchema(t, defFor(t, "User"))

	props, ok := schema["properties"].(bson.M)
	require.True(t, ok)
	assert.Contains(t, props, "_id")
	assert.NotContains(t, props, "id")
	assert.Contains(t, props, "email")

	required, ok := schema["required"].([]string)
	require.True(t, ok)
	assert.Contains(t, required, "_id")
	assert.Contains(t, required, "passwordHash")
	assert.NotContains(t, required, "lastActiveAt")
}

func TestCollectionValidatorNullableAndEnums(t *testing.T) {
	schema := jsonSchema(t, defFor(t, "UserVocabularyItem"))
	props := schema["properties"].(bson.M)

	// Required enum fields admit exactly their declared values.
	status := props["status"].(bson.M)
	assert.Equal(t, []any{"NEW", "LEARNING", "KNOWN", "MASTERED"}, status["enum"])

	// Nullable enum fields admit null too.
	pos := props["partOfSpeech"].(bson.M)
	enum := pos["enum"].([]any)
	assert.Contains(t, enum, "NOUN")
	assert.Contains(t, enum, nil)

	// Nullable scalars admit null alongside their type.
	freq := props["frequency"].(bson.M)
	assert.Equal(t, []string{"double", "null"}, freq["bsonType"])

	// Int fields admit both encodings the driver may choose.
	reviewed := props["timesReviewed"].(bson.M)
	assert.Equal(t, []string{"int", "long"}, reviewed["bsonType"])
}

func TestCompositeKeyEntitiesKeepFieldNames(t *testing.T) {
	schema := jsonSchema(t, defFor(t, "UserLanguage"))
	props := schema["properties"].(bson.M)

	assert.Contains(t, props, "userId")
	assert.Contains(t, props, "languageId")
	assert.NotContains(t, props, "_id")
}

func TestIndexesFromModel(t *testing.T) {
	names := func(entity string) []string {
		var out []string
		for _, m := range Indexes(defFor(t, entity)) {
			out = append(out, *m.Options.Name)
		}
		return out
	}

	assert.Equal(t, []string{"uq_User_email", "uq_User_username",
		"ix_User_nativeLanguageId", "ix_User_currentLanguageId"}, names("User"))

	// Composite logical keys become a unique compound index.
	assert.Contains(t, names("UserLanguage"), "uq_UserLanguage_key")
	assert.Contains(t, names("UserVocabulary"), "uq_UserVocabulary_user_language")
	assert.Contains(t, names("UserVocabularyItem"), "uq_UserVocabularyItem_vocab_term")

	for _, m := range Indexes(defFor(t, "UserVocabulary")) {
		if *m.Options.Name == "uq_UserVocabulary_user_language" {
			assert.Equal(t, bson.D{{Key: "userId", Value: 1}, {Key: "languageId", Value: 1}}, m.Keys)
			require.NotNil(t, m.Options.Unique)
			assert.True(t, *m.Options.Unique)
		}
	}
}

func TestEveryUniqueScopeHasAConflictMapping(t *testing.T) {
	// Each declared uniqueness scope must translate to a dedicated
	// conflict error on duplicate-key violations.
	for _, def := range model.Definitions() {
		for _, u := range def.Uniques {
			_, ok := uniqueIndexes[u.Name]
			assert.True(t, ok, "no conflict mapping for index %s", u.Name)
		}
	}
}
