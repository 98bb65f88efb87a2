package store

import (
	"context"

	"github.com/lexiglow/lexistore/internal/domain"
)

// UserStore persists User entities.
type UserStore interface {
	// Create validates the draft, verifies both language references
	// exist, and saves a new User. Returns ErrEmailExists or
	// ErrUsernameExists on a uniqueness conflict.
	Create(ctx context.Context, draft domain.UserDraft) (*domain.User, error)

	// GetByID retrieves a User by id.
	// Returns ErrUserNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a User by its unique email.
	// Returns ErrUserNotFound if it does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByUsername retrieves a User by its unique username.
	// Returns ErrUserNotFound if it does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// List returns users in chronological order.
	List(ctx context.Context, opts ListOptions) ([]*domain.User, error)

	// Update applies a partial patch, re-checking any changed language
	// reference exactly as on create, and returns the updated User.
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)

	// Delete removes a User, cascading deletion of its UserLanguage
	// and UserVocabulary dependents (and their items) and nulling the
	// author reference on its Texts.
	Delete(ctx context.Context, id string) error
}

// UserLanguageStore persists UserLanguage associations, keyed by the
// (user, language) pair.
type UserLanguageStore interface {
	// Create validates the draft, verifies both references exist, and
	// saves a new association. Returns ErrUserLanguageExists if the
	// pair is already tracked.
	Create(ctx context.Context, draft domain.UserLanguageDraft) (*domain.UserLanguage, error)

	// Get retrieves the association for the (user, language) pair.
	// Returns ErrUserLanguageNotFound if it does not exist.
	Get(ctx context.Context, userID, languageID string) (*domain.UserLanguage, error)

	// ListByUser returns a user's associations in chronological order.
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]*domain.UserLanguage, error)

	// Update applies a partial patch and returns the updated
	// association.
	Update(ctx context.Context, userID, languageID string, patch domain.UserLanguagePatch) (*domain.UserLanguage, error)

	// Delete removes the association for the (user, language) pair.
	Delete(ctx context.Context, userID, languageID string) error
}
