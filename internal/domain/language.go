package domain

import "time"

// Language represents a language supported by the application.
// Languages are immutable after creation except for display metadata.
type Language struct {
	ID         string    `json:"id"         db:"id"         bson:"_id"        validate:"required,ulid"`
	Name       string    `json:"name"       db:"name"       bson:"name"       validate:"required"`
	Code       string    `json:"code"       db:"code"       bson:"code"       validate:"required,max=8"`
	NativeName string    `json:"nativeName" db:"nativeName" bson:"nativeName" validate:"required"`
	CreatedAt  time.Time `json:"createdAt"  db:"createdAt"  bson:"createdAt"`
}

// LanguageDraft carries the caller-supplied fields for a new Language.
// Code is a short unique language tag such as "en" or "es".
type LanguageDraft struct {
	Name       string
	Code       string
	NativeName string
}

// NewLanguage builds a Language from a draft, generating its identifier
// and creation timestamp. Returns a *ValidationError if the draft is
// invalid.
func NewLanguage(d LanguageDraft) (*Language, error) {
	l := &Language{
		ID:         NewID(),
		Name:       d.Name,
		Code:       d.Code,
		NativeName: d.NativeName,
		CreatedAt:  Now(),
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// Validate checks the Language's field-level invariants.
func (l *Language) Validate() error {
	return validateStruct("Language", l)
}

// LanguagePatch is a partial update for a Language. Nil fields are left
// unchanged. The code is deliberately not patchable: languages are
// immutable after creation except for display metadata.
type LanguagePatch struct {
	Name       *string
	NativeName *string
}

// Apply copies the set fields of the patch onto the Language.
func (l *Language) Apply(p LanguagePatch) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.NativeName != nil {
		l.NativeName = *p.NativeName
	}
}
