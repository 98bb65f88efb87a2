package model

import (
	"context"
	"fmt"

	"github.com/lexiglow/lexistore/internal/domain"
)

// ReferenceChecker answers whether an entity with the given id exists.
// Each engine implements it over its own read path; inside a relational
// transaction the check sees the transaction's own writes.
type ReferenceChecker interface {
	Exists(ctx context.Context, entity, id string) (bool, error)
}

// Reference is one concrete reference value to verify: entity.Field
// holds ID, which must name an existing Target.
type Reference struct {
	Field  string
	Target string
	ID     string
}

// CheckReferences verifies that every reference points at an existing
// target, returning a *domain.ValidationError naming the first field
// that does not. References with an empty ID (unset nullable fields)
// are skipped. Both engines run this on create and on update: a changed
// reference is re-checked exactly as it is on create.
func CheckReferences(ctx context.Context, rc ReferenceChecker, entity string, refs []Reference) error {
	for _, r := range refs {
		if r.ID == "" {
			continue
		}
		ok, err := rc.Exists(ctx, r.Target, r.ID)
		if err != nil {
			return fmt.Errorf("checking %s.%s reference: %w", entity, r.Field, err)
		}
		if !ok {
			return domain.NewValidationError(
				entity, r.Field,
				fmt.Sprintf("references a %s that does not exist", r.Target),
			)
		}
	}
	return nil
}

// UserReferences lists the reference values carried by a User.
func UserReferences(u *domain.User) []Reference {
	return []Reference{
		{Field: "nativeLanguageId", Target: "Language", ID: u.NativeLanguageID},
		{Field: "currentLanguageId", Target: "Language", ID: u.CurrentLanguageID},
	}
}

// UserLanguageReferences lists the reference values carried by a
// UserLanguage association.
func UserLanguageReferences(ul *domain.UserLanguage) []Reference {
	return []Reference{
		{Field: "userId", Target: "User", ID: ul.UserID},
		{Field: "languageId", Target: "Language", ID: ul.LanguageID},
	}
}

// TextReferences lists the reference values carried by a Text,
// including one reference per associated tag.
func TextReferences(t *domain.Text) []Reference {
	refs := []Reference{
		{Field: "languageId", Target: "Language", ID: t.LanguageID},
	}
	if t.AuthorID != nil {
		refs = append(refs, Reference{Field: "authorId", Target: "User", ID: *t.AuthorID})
	}
	for _, tagID := range t.TagIDs {
		refs = append(refs, Reference{Field: "tagIds", Target: "TextTag", ID: tagID})
	}
	return refs
}

// UserVocabularyReferences lists the reference values carried by a
// UserVocabulary.
func UserVocabularyReferences(v *domain.UserVocabulary) []Reference {
	return []Reference{
		{Field: "userId", Target: "User", ID: v.UserID},
		{Field: "languageId", Target: "Language", ID: v.LanguageID},
	}
}

// UserVocabularyItemReferences lists the reference values carried by a
// UserVocabularyItem.
func UserVocabularyItemReferences(i *domain.UserVocabularyItem) []Reference {
	return []Reference{
		{Field: "userVocabularyId", Target: "UserVocabulary", ID: i.UserVocabularyID},
	}
}
