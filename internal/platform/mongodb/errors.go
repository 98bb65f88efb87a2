package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/store"
)

// uniqueIndexes maps the index name reported on a duplicate-key error
// to the uniqueness conflict declared for that scope in the entity
// model. The keyIndexName entries cover the junction collections whose
// composite logical key is enforced by a unique compound index.
var uniqueIndexes = map[string]error{
	"uq_Language_code":                 store.ErrLanguageCodeExists,
	"uq_User_email":                    store.ErrEmailExists,
	"uq_User_username":                 store.ErrUsernameExists,
	"uq_UserLanguage_key":              store.ErrUserLanguageExists,
	"uq_TextTag_name":                  store.ErrTagNameExists,
	"uq_UserVocabulary_user_language":  store.ErrVocabularyExists,
	"uq_UserVocabularyItem_vocab_term": store.ErrTermExists,
}

// notFoundErrs maps entity names to their taxonomy sentinel.
var notFoundErrs = map[string]error{
	"Language":           store.ErrLanguageNotFound,
	"User":               store.ErrUserNotFound,
	"UserLanguage":       store.ErrUserLanguageNotFound,
	"Text":               store.ErrTextNotFound,
	"TextTag":            store.ErrTextTagNotFound,
	"UserVocabulary":     store.ErrUserVocabularyNotFound,
	"UserVocabularyItem": store.ErrUserVocabularyItemNotFound,
}

func notFoundFor(entity string) error {
	if err, ok := notFoundErrs[entity]; ok {
		return err
	}
	return store.ErrNotFound
}

// mapError translates a driver error into the shared taxonomy. No
// mongo error type leaves this package. A duplicate _id is an id
// collision, not a declared uniqueness scope, and surfaces as a
// generic conflict.
func mapError(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return notFoundFor(entity)
	}
	if mongo.IsDuplicateKeyError(err) {
		return duplicateKey(entity, err)
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	// Schema validation rejections arrive as write errors with the
	// DocumentValidationFailure code.
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, w := range we.WriteErrors {
			if w.Code == 121 {
				return domain.NewValidationError(entity, "document", "document rejected by collection validator")
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 121 {
		return domain.NewValidationError(entity, "document", "document rejected by collection validator")
	}

	return err
}

// duplicateKey resolves which uniqueness scope a duplicate-key error
// violated. The driver does not expose the index name as a field, so
// it is recovered from the error message, which names the index.
func duplicateKey(entity string, err error) error {
	msg := err.Error()
	for index, indexErr := range uniqueIndexes {
		if strings.Contains(msg, index) {
			return indexErr
		}
	}
	return fmt.Errorf("%w: %s uniqueness violated", store.ErrConflict, entity)
}
