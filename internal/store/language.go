package store

import (
	"context"

	"github.com/lexiglow/lexistore/internal/domain"
)

// LanguageStore persists Language entities.
type LanguageStore interface {
	// Create validates the draft and saves a new Language.
	// Returns ErrLanguageCodeExists if the code is already taken.
	Create(ctx context.Context, draft domain.LanguageDraft) (*domain.Language, error)

	// GetByID retrieves a Language by id.
	// Returns ErrLanguageNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.Language, error)

	// GetByCode retrieves a Language by its unique code.
	// Returns ErrLanguageNotFound if it does not exist.
	GetByCode(ctx context.Context, code string) (*domain.Language, error)

	// List returns languages in chronological order.
	List(ctx context.Context, opts ListOptions) ([]*domain.Language, error)

	// Update applies a partial patch and returns the updated Language.
	// Returns ErrLanguageNotFound if it does not exist.
	Update(ctx context.Context, id string, patch domain.LanguagePatch) (*domain.Language, error)

	// Delete removes a Language. Returns ErrConflict while any User,
	// Text, or UserVocabulary still references it (RESTRICT); the
	// UserLanguage associations of an otherwise unreferenced Language
	// are deleted along with it (CASCADE).
	Delete(ctx context.Context, id string) error
}

// TextTagStore persists TextTag entities.
type TextTagStore interface {
	// Create validates the draft and saves a new TextTag.
	// Returns ErrTagNameExists if the name is already taken.
	Create(ctx context.Context, draft domain.TextTagDraft) (*domain.TextTag, error)

	// GetByID retrieves a TextTag by id.
	// Returns ErrTextTagNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.TextTag, error)

	// GetByName retrieves a TextTag by its unique name.
	// Returns ErrTextTagNotFound if it does not exist.
	GetByName(ctx context.Context, name string) (*domain.TextTag, error)

	// List returns tags ordered by name.
	List(ctx context.Context, opts ListOptions) ([]*domain.TextTag, error)

	// Update applies a partial patch and returns the updated TextTag.
	Update(ctx context.Context, id string, patch domain.TextTagPatch) (*domain.TextTag, error)

	// Delete removes a TextTag and its text associations (CASCADE).
	Delete(ctx context.Context, id string) error
}
