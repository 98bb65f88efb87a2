package domain

import "time"

// User represents a registered user. PasswordHash is an opaque string
// supplied by the (out of scope) auth layer; this layer never hashes or
// inspects password content.
type User struct {
	ID                string     `json:"id"                db:"id"                bson:"_id"               validate:"required,ulid"`
	Email             string     `json:"email"             db:"email"             bson:"email"             validate:"required,email"`
	Username          string     `json:"username"          db:"username"          bson:"username"          validate:"required,max=64"`
	PasswordHash      string     `json:"-"                 db:"passwordHash"      bson:"passwordHash"      validate:"required"`
	FirstName         string     `json:"firstName"         db:"firstName"         bson:"firstName"         validate:"required"`
	LastName          string     `json:"lastName"          db:"lastName"          bson:"lastName"          validate:"required"`
	NativeLanguageID  string     `json:"nativeLanguageId"  db:"nativeLanguageId"  bson:"nativeLanguageId"  validate:"required,ulid"`
	CurrentLanguageID string     `json:"currentLanguageId" db:"currentLanguageId" bson:"currentLanguageId" validate:"required,ulid"`
	CreatedAt         time.Time  `json:"createdAt"         db:"createdAt"         bson:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"         db:"updatedAt"         bson:"updatedAt"`
	LastActiveAt      *time.Time `json:"lastActiveAt"      db:"lastActiveAt"      bson:"lastActiveAt"`
}

// UserDraft carries the caller-supplied fields for a new User. Both
// language references must point at existing Language rows/documents;
// the stores verify that at write time.
type UserDraft struct {
	Email             string
	Username          string
	PasswordHash      string
	FirstName         string
	LastName          string
	NativeLanguageID  string
	CurrentLanguageID string
}

// NewUser builds a User from a draft, generating its identifier and
// timestamps. Returns a *ValidationError if the draft is invalid.
func NewUser(d UserDraft) (*User, error) {
	now := Now()
	u := &User{
		ID:                NewID(),
		Email:             d.Email,
		Username:          d.Username,
		PasswordHash:      d.PasswordHash,
		FirstName:         d.FirstName,
		LastName:          d.LastName,
		NativeLanguageID:  d.NativeLanguageID,
		CurrentLanguageID: d.CurrentLanguageID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate checks the User's field-level invariants.
func (u *User) Validate() error {
	return validateStruct("User", u)
}

// UserPatch is a partial update for a User. Nil fields are left
// unchanged. Changed language references are re-checked against existing
// Languages exactly as on create. ClearLastActiveAt nulls the field and
// takes precedence over a set LastActiveAt.
type UserPatch struct {
	Email             *string
	Username          *string
	PasswordHash      *string
	FirstName         *string
	LastName          *string
	NativeLanguageID  *string
	CurrentLanguageID *string
	LastActiveAt      *time.Time
	ClearLastActiveAt bool
}

// Apply copies the set fields of the patch onto the User. It does not
// touch UpdatedAt: the relational engine maintains it by trigger, the
// document engine sets it explicitly at write time.
func (u *User) Apply(p UserPatch) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.NativeLanguageID != nil {
		u.NativeLanguageID = *p.NativeLanguageID
	}
	if p.CurrentLanguageID != nil {
		u.CurrentLanguageID = *p.CurrentLanguageID
	}
	switch {
	case p.ClearLastActiveAt:
		u.LastActiveAt = nil
	case p.LastActiveAt != nil:
		t := *p.LastActiveAt
		u.LastActiveAt = &t
	}
}

// UserLanguage tracks a language a user is learning, keyed by the
// (user, language) pair.
type UserLanguage struct {
	UserID           string           `json:"userId"           db:"userId"           bson:"userId"           validate:"required,ulid"`
	LanguageID       string           `json:"languageId"       db:"languageId"       bson:"languageId"       validate:"required,ulid"`
	ProficiencyLevel ProficiencyLevel `json:"proficiencyLevel" db:"proficiencyLevel" bson:"proficiencyLevel" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	StartedAt        time.Time        `json:"startedAt"        db:"startedAt"        bson:"startedAt"        validate:"required"`
	CreatedAt        time.Time        `json:"createdAt"        db:"createdAt"        bson:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"        db:"updatedAt"        bson:"updatedAt"`
}

// UserLanguageDraft carries the caller-supplied fields for a new
// UserLanguage association.
type UserLanguageDraft struct {
	UserID           string
	LanguageID       string
	ProficiencyLevel ProficiencyLevel
	StartedAt        time.Time
}

// NewUserLanguage builds a UserLanguage from a draft. Returns a
// *ValidationError if the draft is invalid.
func NewUserLanguage(d UserLanguageDraft) (*UserLanguage, error) {
	now := Now()
	ul := &UserLanguage{
		UserID:           d.UserID,
		LanguageID:       d.LanguageID,
		ProficiencyLevel: d.ProficiencyLevel,
		StartedAt:        d.StartedAt.UTC().Truncate(time.Millisecond),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := ul.Validate(); err != nil {
		return nil, err
	}
	return ul, nil
}

// Validate checks the UserLanguage's field-level invariants.
func (ul *UserLanguage) Validate() error {
	return validateStruct("UserLanguage", ul)
}

// UserLanguagePatch is a partial update for a UserLanguage.
type UserLanguagePatch struct {
	ProficiencyLevel *ProficiencyLevel
	StartedAt        *time.Time
}

// Apply copies the set fields of the patch onto the UserLanguage.
func (ul *UserLanguage) Apply(p UserLanguagePatch) {
	if p.ProficiencyLevel != nil {
		ul.ProficiencyLevel = *p.ProficiencyLevel
	}
	if p.StartedAt != nil {
		ul.StartedAt = p.StartedAt.UTC().Truncate(time.Millisecond)
	}
}
