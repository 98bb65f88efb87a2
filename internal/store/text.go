package store

import (
	"context"

	"github.com/lexiglow/lexistore/internal/domain"
)

// TextStore persists Text entities together with their tag
// associations.
type TextStore interface {
	// Create validates the draft, verifies the language, author, and
	// tag references exist, and saves a new Text with its tag
	// associations.
	Create(ctx context.Context, draft domain.TextDraft) (*domain.Text, error)

	// GetByID retrieves a Text by id, with TagIDs populated.
	// Returns ErrTextNotFound if it does not exist.
	GetByID(ctx context.Context, id string) (*domain.Text, error)

	// List returns texts matching the filter in chronological order,
	// with TagIDs populated.
	List(ctx context.Context, filter TextFilter, opts ListOptions) ([]*domain.Text, error)

	// Update applies a partial patch and returns the updated Text. A
	// patch carrying TagIDs replaces the full tag set.
	Update(ctx context.Context, id string, patch domain.TextPatch) (*domain.Text, error)

	// Delete removes a Text and its tag associations (CASCADE).
	Delete(ctx context.Context, id string) error
}
