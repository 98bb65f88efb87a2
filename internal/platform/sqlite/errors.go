package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/store"
)

// uniqueScopes maps the column list SQLite reports on a unique
// violation ("UNIQUE constraint failed: <cols>") to the uniqueness
// conflict declared for that scope in the entity model. Composite
// primary keys of the junction entities count as uniqueness scopes too.
var uniqueScopes = map[string]error{
	"Language.code":                       store.ErrLanguageCodeExists,
	"User.email":                          store.ErrEmailExists,
	"User.username":                       store.ErrUsernameExists,
	"UserLanguage.userId":                 store.ErrUserLanguageExists,
	"TextTag.name":                        store.ErrTagNameExists,
	"UserVocabulary.userId":               store.ErrVocabularyExists,
	"UserVocabularyItem.userVocabularyId": store.ErrTermExists,
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
// sqlite3 error type leaves this package. deleting distinguishes the
// two meanings of a foreign-key violation: on DELETE it is a RESTRICT
// conflict, on INSERT/UPDATE a reference to a nonexistent entity.
func mapError(entity string, deleting bool, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return notFoundFor(entity)
	}
	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
	}

	var serr sqlite3.Error
	if errors.As(err, &serr) {
		switch serr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return uniqueViolation(entity, serr)
		case sqlite3.ErrConstraintForeignKey:
			if deleting {
				return fmt.Errorf("%w: %s is still referenced", store.ErrConflict, entity)
			}
			return domain.NewValidationError(entity, "reference", "references an entity that does not exist")
		case sqlite3.ErrConstraintCheck:
			return domain.NewValidationError(entity, "enum", "value outside its declared domain")
		case sqlite3.ErrConstraintNotNull:
			return domain.NewValidationError(entity, "required", "required field is missing")
		}
		switch serr.Code {
		case sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrCantOpen, sqlite3.ErrIoErr:
			return fmt.Errorf("%w: %v", store.ErrUnavailable, err)
		}
	}

	return err
}

func uniqueViolation(entity string, serr sqlite3.Error) error {
	msg := serr.Error()
	for scope, scopeErr := range uniqueScopes {
		if strings.Contains(msg, scope) {
			return scopeErr
		}
	}
	return fmt.Errorf("%w: %s uniqueness violated", store.ErrConflict, entity)
}
