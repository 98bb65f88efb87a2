package domain

import (
	"sort"
	"strings"
	"time"
)

// Text represents reading material for language learners. AuthorID is
// nil for system-authored content. WordCount is derived from Content at
// write time and never supplied by callers. TagIDs is the set of
// TextTag identifiers associated with the text; it is persisted through
// the TextTagAssociation table/collection, not on the text itself.
type Text struct {
	ID               string           `json:"id"               db:"id"               bson:"_id"              validate:"required,ulid"`
	Title            string           `json:"title"            db:"title"            bson:"title"            validate:"required"`
	Content          string           `json:"content"          db:"content"          bson:"content"          validate:"required"`
	LanguageID       string           `json:"languageId"       db:"languageId"       bson:"languageId"       validate:"required,ulid"`
	AuthorID         *string          `json:"authorId"         db:"userId"           bson:"userId"           validate:"omitempty,ulid"`
	ProficiencyLevel ProficiencyLevel `json:"proficiencyLevel" db:"proficiencyLevel" bson:"proficiencyLevel" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	WordCount        int              `json:"wordCount"        db:"wordCount"        bson:"wordCount"        validate:"gte=0"`
	IsPublic         bool             `json:"isPublic"         db:"isPublic"         bson:"isPublic"`
	Source           *string          `json:"source"           db:"source"           bson:"source"`
	CreatedAt        time.Time        `json:"createdAt"        db:"createdAt"        bson:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"        db:"updatedAt"        bson:"updatedAt"`
	TagIDs           []string         `json:"tagIds"           db:"-"                bson:"-"                validate:"dive,ulid"`
}

// TextDraft carries the caller-supplied fields for a new Text.
type TextDraft struct {
	Title            string
	Content          string
	LanguageID       string
	AuthorID         *string
	ProficiencyLevel ProficiencyLevel
	IsPublic         bool
	Source           *string
	TagIDs           []string
}

// NewText builds a Text from a draft, generating its identifier and
// timestamps and deriving the word count from the content. Returns a
// *ValidationError if the draft is invalid.
func NewText(d TextDraft) (*Text, error) {
	now := Now()
	t := &Text{
		ID:               NewID(),
		Title:            d.Title,
		Content:          d.Content,
		LanguageID:       d.LanguageID,
		AuthorID:         d.AuthorID,
		ProficiencyLevel: d.ProficiencyLevel,
		WordCount:        CountWords(d.Content),
		IsPublic:         d.IsPublic,
		Source:           d.Source,
		CreatedAt:        now,
		UpdatedAt:        now,
		TagIDs:           normalizeTagIDs(d.TagIDs),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the Text's field-level invariants.
func (t *Text) Validate() error {
	return validateStruct("Text", t)
}

// TextPatch is a partial update for a Text. Nil fields are left
// unchanged. Setting Content recomputes WordCount. A non-nil TagIDs
// replaces the full tag set. ClearSource nulls the source and takes
// precedence over a set Source.
type TextPatch struct {
	Title            *string
	Content          *string
	ProficiencyLevel *ProficiencyLevel
	IsPublic         *bool
	Source           *string
	ClearSource      bool
	TagIDs           *[]string
}

// Apply copies the set fields of the patch onto the Text.
func (t *Text) Apply(p TextPatch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Content != nil {
		t.Content = *p.Content
		t.WordCount = CountWords(t.Content)
	}
	if p.ProficiencyLevel != nil {
		t.ProficiencyLevel = *p.ProficiencyLevel
	}
	if p.IsPublic != nil {
		t.IsPublic = *p.IsPublic
	}
	switch {
	case p.ClearSource:
		t.Source = nil
	case p.Source != nil:
		s := *p.Source
		t.Source = &s
	}
	if p.TagIDs != nil {
		t.TagIDs = normalizeTagIDs(*p.TagIDs)
	}
}

// CountWords derives a text's word count: the number of
// whitespace-separated tokens in its content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// normalizeTagIDs deduplicates and sorts tag identifiers. TagIDs is a
// set: both engines persist it through association rows and return it
// in sorted order, so a created entity compares equal to its re-read.
func normalizeTagIDs(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// TextTag categorizes texts for discovery. Names are unique.
type TextTag struct {
	ID          string  `json:"id"          db:"id"          bson:"_id"         validate:"required,ulid"`
	Name        string  `json:"name"        db:"name"        bson:"name"        validate:"required,max=64"`
	Description *string `json:"description" db:"description" bson:"description"`
}

// TextTagDraft carries the caller-supplied fields for a new TextTag.
type TextTagDraft struct {
	Name        string
	Description *string
}

// NewTextTag builds a TextTag from a draft. Returns a *ValidationError
// if the draft is invalid.
func NewTextTag(d TextTagDraft) (*TextTag, error) {
	tag := &TextTag{
		ID:          NewID(),
		Name:        d.Name,
		Description: d.Description,
	}
	if err := tag.Validate(); err != nil {
		return nil, err
	}
	return tag, nil
}

// Validate checks the TextTag's field-level invariants.
func (tt *TextTag) Validate() error {
	return validateStruct("TextTag", tt)
}

// TextTagPatch is a partial update for a TextTag. ClearDescription
// nulls the description and takes precedence over a set Description.
type TextTagPatch struct {
	Name             *string
	Description      *string
	ClearDescription bool
}

// Apply copies the set fields of the patch onto the TextTag.
func (tt *TextTag) Apply(p TextTagPatch) {
	if p.Name != nil {
		tt.Name = *p.Name
	}
	switch {
	case p.ClearDescription:
		tt.Description = nil
	case p.Description != nil:
		d := *p.Description
		tt.Description = &d
	}
}
