package store

import (
	"errors"
	"fmt"

	"github.com/lexiglow/lexistore/internal/domain"
)

// Error taxonomy shared by every engine implementation. Engine-native
// errors are translated into these at the repository boundary:
//
//   - validation errors (domain.ErrValidation) are recoverable by the
//     caller and never retried automatically;
//   - ErrConflict covers unique-constraint violations and deletes
//     blocked by a RESTRICT dependent, and is not retried;
//   - ErrNotFound is surfaced as-is;
//   - ErrUnavailable (connection/transport failure) is the only class
//     eligible for caller-directed retry. This layer never retries
//     internally: retrying a partially-applied document-engine sequence
//     could double-apply cascade effects.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned when an operation would violate a
	// uniqueness scope, or when a delete is blocked by dependents with
	// a RESTRICT policy.
	ErrConflict = errors.New("conflict")

	// ErrUnavailable is returned when the storage engine cannot be
	// reached or the connection fails mid-operation.
	ErrUnavailable = errors.New("storage unavailable")

	// Entity-specific "not found" errors.

	ErrLanguageNotFound           = fmt.Errorf("%w: language", ErrNotFound)
	ErrUserNotFound               = fmt.Errorf("%w: user", ErrNotFound)
	ErrUserLanguageNotFound       = fmt.Errorf("%w: user language", ErrNotFound)
	ErrTextNotFound               = fmt.Errorf("%w: text", ErrNotFound)
	ErrTextTagNotFound            = fmt.Errorf("%w: text tag", ErrNotFound)
	ErrUserVocabularyNotFound     = fmt.Errorf("%w: user vocabulary", ErrNotFound)
	ErrUserVocabularyItemNotFound = fmt.Errorf("%w: user vocabulary item", ErrNotFound)

	// Entity-specific uniqueness conflicts, one per uniqueness scope
	// declared in the entity model.

	ErrLanguageCodeExists = fmt.Errorf("%w: language code already exists", ErrConflict)
	ErrEmailExists        = fmt.Errorf("%w: email already exists", ErrConflict)
	ErrUsernameExists     = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrUserLanguageExists = fmt.Errorf("%w: user already tracks this language", ErrConflict)
	ErrTagNameExists      = fmt.Errorf("%w: tag name already exists", ErrConflict)
	ErrVocabularyExists   = fmt.Errorf("%w: user already has a vocabulary for this language", ErrConflict)
	ErrTermExists         = fmt.Errorf("%w: term already exists in this vocabulary", ErrConflict)
)

// NewRestrictedDeleteError builds the conflict returned when deleting
// an entity that dependents with a RESTRICT policy still reference.
func NewRestrictedDeleteError(entity, dependent string) error {
	return fmt.Errorf("%w: %s is still referenced by %s", ErrConflict, entity, dependent)
}

// IsNotFound reports whether err is any "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err is any uniqueness or restricted-delete
// conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation reports whether err is a validation failure (malformed
// or missing field, enum value outside its domain, or a reference to a
// nonexistent entity).
func IsValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation)
}

// IsUnavailable reports whether err is a connection/transport failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
