package domain

import "time"

// UserVocabulary is a user's vocabulary collection for one language.
// A user holds at most one vocabulary per language.
type UserVocabulary struct {
	ID         string    `json:"id"         db:"id"         bson:"_id"        validate:"required,ulid"`
	UserID     string    `json:"userId"     db:"userId"     bson:"userId"     validate:"required,ulid"`
	LanguageID string    `json:"languageId" db:"languageId" bson:"languageId" validate:"required,ulid"`
	Name       string    `json:"name"       db:"name"       bson:"name"       validate:"required"`
	CreatedAt  time.Time `json:"createdAt"  db:"createdAt"  bson:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"  db:"updatedAt"  bson:"updatedAt"`
}

// UserVocabularyDraft carries the caller-supplied fields for a new
// UserVocabulary.
type UserVocabularyDraft struct {
	UserID     string
	LanguageID string
	Name       string
}

// NewUserVocabulary builds a UserVocabulary from a draft. Returns a
// *ValidationError if the draft is invalid.
func NewUserVocabulary(d UserVocabularyDraft) (*UserVocabulary, error) {
	now := Now()
	v := &UserVocabulary{
		ID:         NewID(),
		UserID:     d.UserID,
		LanguageID: d.LanguageID,
		Name:       d.Name,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the UserVocabulary's field-level invariants.
func (v *UserVocabulary) Validate() error {
	return validateStruct("UserVocabulary", v)
}

// UserVocabularyPatch is a partial update for a UserVocabulary. The
// user and language references are fixed at creation; only the display
// name is patchable.
type UserVocabularyPatch struct {
	Name *string
}

// Apply copies the set fields of the patch onto the UserVocabulary.
func (v *UserVocabulary) Apply(p UserVocabularyPatch) {
	if p.Name != nil {
		v.Name = *p.Name
	}
}

// UserVocabularyItem is a single tracked term within a vocabulary.
// Terms are unique within their vocabulary.
type UserVocabularyItem struct {
	ID               string               `json:"id"               db:"id"               bson:"_id"              validate:"required,ulid"`
	UserVocabularyID string               `json:"userVocabularyId" db:"userVocabularyId" bson:"userVocabularyId" validate:"required,ulid"`
	Term             string               `json:"term"             db:"term"             bson:"term"             validate:"required"`
	Lemma            *string              `json:"lemma"            db:"lemma"            bson:"lemma"`
	Stemma           *string              `json:"stemma"           db:"stemma"           bson:"stemma"`
	PartOfSpeech     *PartOfSpeech        `json:"partOfSpeech"     db:"partOfSpeech"     bson:"partOfSpeech"     validate:"omitempty,oneof=NOUN VERB ADJECTIVE ADVERB PRONOUN PREPOSITION CONJUNCTION INTERJECTION ARTICLE OTHER"`
	Frequency        *float64             `json:"frequency"        db:"frequency"        bson:"frequency"        validate:"omitempty,gte=0"`
	Status           VocabularyItemStatus `json:"status"           db:"status"           bson:"status"           validate:"required,oneof=NEW LEARNING KNOWN MASTERED"`
	TimesReviewed    int                  `json:"timesReviewed"    db:"timesReviewed"    bson:"timesReviewed"    validate:"gte=0"`
	ConfidenceLevel  ProficiencyLevel     `json:"confidenceLevel"  db:"confidenceLevel"  bson:"confidenceLevel"  validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	Notes            *string              `json:"notes"            db:"notes"            bson:"notes"`
	CreatedAt        time.Time            `json:"createdAt"        db:"createdAt"        bson:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"        db:"updatedAt"        bson:"updatedAt"`
}

// UserVocabularyItemDraft carries the caller-supplied fields for a new
// UserVocabularyItem. Status defaults to NEW and ConfidenceLevel to A1
// when left empty.
type UserVocabularyItemDraft struct {
	UserVocabularyID string
	Term             string
	Lemma            *string
	Stemma           *string
	PartOfSpeech     *PartOfSpeech
	Frequency        *float64
	Status           VocabularyItemStatus
	ConfidenceLevel  ProficiencyLevel
	Notes            *string
}

// NewUserVocabularyItem builds a UserVocabularyItem from a draft.
// Returns a *ValidationError if the draft is invalid.
func NewUserVocabularyItem(d UserVocabularyItemDraft) (*UserVocabularyItem, error) {
	status := d.Status
	if status == "" {
		status = VocabularyItemNew
	}
	confidence := d.ConfidenceLevel
	if confidence == "" {
		confidence = ProficiencyA1
	}

	now := Now()
	item := &UserVocabularyItem{
		ID:               NewID(),
		UserVocabularyID: d.UserVocabularyID,
		Term:             d.Term,
		Lemma:            d.Lemma,
		Stemma:           d.Stemma,
		PartOfSpeech:     d.PartOfSpeech,
		Frequency:        d.Frequency,
		Status:           status,
		TimesReviewed:    0,
		ConfidenceLevel:  confidence,
		Notes:            d.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the UserVocabularyItem's field-level invariants.
func (i *UserVocabularyItem) Validate() error {
	return validateStruct("UserVocabularyItem", i)
}

// UserVocabularyItemPatch is a partial update for a UserVocabularyItem.
// Nil fields are left unchanged. Each Clear flag nulls its nullable
// field and takes precedence over the matching pointer.
type UserVocabularyItemPatch struct {
	Term              *string
	Lemma             *string
	ClearLemma        bool
	Stemma            *string
	ClearStemma       bool
	PartOfSpeech      *PartOfSpeech
	ClearPartOfSpeech bool
	Frequency         *float64
	ClearFrequency    bool
	Status            *VocabularyItemStatus
	TimesReviewed     *int
	ConfidenceLevel   *ProficiencyLevel
	Notes             *string
	ClearNotes        bool
}

// Apply copies the set fields of the patch onto the UserVocabularyItem.
func (i *UserVocabularyItem) Apply(p UserVocabularyItemPatch) {
	if p.Term != nil {
		i.Term = *p.Term
	}
	switch {
	case p.ClearLemma:
		i.Lemma = nil
	case p.Lemma != nil:
		s := *p.Lemma
		i.Lemma = &s
	}
	switch {
	case p.ClearStemma:
		i.Stemma = nil
	case p.Stemma != nil:
		s := *p.Stemma
		i.Stemma = &s
	}
	switch {
	case p.ClearPartOfSpeech:
		i.PartOfSpeech = nil
	case p.PartOfSpeech != nil:
		pos := *p.PartOfSpeech
		i.PartOfSpeech = &pos
	}
	switch {
	case p.ClearFrequency:
		i.Frequency = nil
	case p.Frequency != nil:
		f := *p.Frequency
		i.Frequency = &f
	}
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.TimesReviewed != nil {
		i.TimesReviewed = *p.TimesReviewed
	}
	if p.ConfidenceLevel != nil {
		i.ConfidenceLevel = *p.ConfidenceLevel
	}
	switch {
	case p.ClearNotes:
		i.Notes = nil
	case p.Notes != nil:
		s := *p.Notes
		i.Notes = &s
	}
}
