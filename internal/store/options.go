package store

import "github.com/lexiglow/lexistore/internal/domain"

// DefaultListLimit bounds List results when the caller does not supply
// a limit.
const DefaultListLimit = 50

// ListOptions paginates List operations. Results are a finite,
// materialized slice in stable chronological order (createdAt, then
// id); a listing is not restartable mid-scan.
type ListOptions struct {
	Limit  int
	Offset int
}

// Normalize clamps the options to sane bounds.
func (o ListOptions) Normalize() ListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultListLimit
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

// TextFilter narrows Text listings. Nil fields do not filter.
type TextFilter struct {
	LanguageID *string
	AuthorID   *string
	Level      *domain.ProficiencyLevel
	PublicOnly bool
	TagID      *string
}

// VocabularyItemFilter narrows UserVocabularyItem listings.
type VocabularyItemFilter struct {
	Status *domain.VocabularyItemStatus
}
