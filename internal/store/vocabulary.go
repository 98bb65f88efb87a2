package store

import (
	"context"

	"github.com/lexiglow/lexistore/internal/domain"
)

// UserVocabularyStore persists UserVocabulary collections.
type UserVocabularyStore interface {
	// Create validates the draft, verifies the user and language
	// exist, and saves a new vocabulary. Returns ErrVocabularyExists
	// if the user already has a vocabulary for the language.
	Create(ctx context.Context, draft domain.UserVocabularyDraft) (*domain.UserVocabulary, error)

	// GetByID retrieves a vocabulary by id.
	// Returns ErrUserVocabularyNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.UserVocabulary, error)

	// GetByUserAndLanguage retrieves the vocabulary for the
	// (user, language) pair.
	// Returns ErrUserVocabularyNotFound if it does not exist.
	GetByUserAndLanguage(ctx context.Context, userID, languageID string) (*domain.UserVocabulary, error)

	// ListByUser returns a user's vocabularies in chronological order.
	ListByUser(ctx context.Context, userID string, opts ListOptions) ([]*domain.UserVocabulary, error)

	// Update applies a partial patch and returns the updated
	// vocabulary.
	Update(ctx context.Context, id string, patch domain.UserVocabularyPatch) (*domain.UserVocabulary, error)

	// Delete removes a vocabulary and all of its items (CASCADE).
	Delete(ctx context.Context, id string) error
}

// UserVocabularyItemStore persists individual vocabulary items.
type UserVocabularyItemStore interface {
	// Create validates the draft, verifies the vocabulary exists, and
	// saves a new item. Returns ErrTermExists if the term is already
	// tracked in the vocabulary.
	Create(ctx context.Context, draft domain.UserVocabularyItemDraft) (*domain.UserVocabularyItem, error)

	// GetByID retrieves an item by id.
	// Returns ErrUserVocabularyItemNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.UserVocabularyItem, error)

	// ListByVocabulary returns a vocabulary's items matching the
	// filter, in chronological order.
	ListByVocabulary(ctx context.Context, vocabularyID string, filter VocabularyItemFilter, opts ListOptions) ([]*domain.UserVocabularyItem, error)

	// Update applies a partial patch and returns the updated item.
	Update(ctx context.Context, id string, patch domain.UserVocabularyItemPatch) (*domain.UserVocabularyItem, error)

	// Delete removes an item.
	Delete(ctx context.Context, id string) error
}
