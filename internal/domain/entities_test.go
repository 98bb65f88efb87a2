package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLanguage(t *testing.T) {
	lang, err := NewLanguage(LanguageDraft{Name: "German", Code: "de", NativeName: "Deutsch"})
	require.NoError(t, err)
	assert.True(t, ValidID(lang.ID))
	assert.False(t, lang.CreatedAt.IsZero())
	assert.Equal(t, time.UTC, lang.CreatedAt.Location())

	_, err = NewLanguage(LanguageDraft{Name: "", Code: "de", NativeName: "Deutsch"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Language", verr.Entity)
	assert.Equal(t, "name", verr.Field)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLanguagePatchLeavesCodeAlone(t *testing.T) {
	lang, err := NewLanguage(LanguageDraft{Name: "German", Code: "de", NativeName: "Deutsch"})
	require.NoError(t, err)

	name := "Standard German"
	lang.Apply(LanguagePatch{Name: &name})
	assert.Equal(t, "Standard German", lang.Name)
	assert.Equal(t, "de", lang.Code)
	assert.Equal(t, "Deutsch", lang.NativeName)
}

func TestNewUserValidation(t *testing.T) {
	langID := NewID()
	draft := UserDraft{
		Email: "kim@example.com", Username: "kim", PasswordHash: "x",
		FirstName: "Kim", LastName: "Lee",
		NativeLanguageID: langID, CurrentLanguageID: langID,
	}

	user, err := NewUser(draft)
	require.NoError(t, err)
	assert.True(t, user.CreatedAt.Equal(user.UpdatedAt))
	assert.Nil(t, user.LastActiveAt)

	bad := draft
	bad.Email = "nope"
	_, err = NewUser(bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Contains(t, verr.Error(), "valid email")

	bad = draft
	bad.NativeLanguageID = "not-an-id"
	_, err = NewUser(bad)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nativeLanguageId", verr.Field)
}

func TestUserPatchDoesNotTouchUpdatedAt(t *testing.T) {
	langID := NewID()
	user, err := NewUser(UserDraft{
		Email: "kim@example.com", Username: "kim", PasswordHash: "x",
		FirstName: "Kim", LastName: "Lee",
		NativeLanguageID: langID, CurrentLanguageID: langID,
	})
	require.NoError(t, err)

	before := user.UpdatedAt
	first := "Kimberly"
	active := time.Now()
	user.Apply(UserPatch{FirstName: &first, LastActiveAt: &active})

	assert.Equal(t, "Kimberly", user.FirstName)
	require.NotNil(t, user.LastActiveAt)
	assert.True(t, user.UpdatedAt.Equal(before), "Apply must leave updatedAt to the engines")
}

func TestNewUserLanguageTruncatesStartedAt(t *testing.T) {
	started := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.FixedZone("CET", 3600))
	ul, err := NewUserLanguage(UserLanguageDraft{
		UserID: NewID(), LanguageID: NewID(),
		ProficiencyLevel: ProficiencyB1, StartedAt: started,
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, ul.StartedAt.Location())
	assert.Zero(t, ul.StartedAt.Nanosecond()%int(time.Millisecond))

	_, err = NewUserLanguage(UserLanguageDraft{
		UserID: NewID(), LanguageID: NewID(),
		ProficiencyLevel: "Z9", StartedAt: started,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "proficiencyLevel", verr.Field)
}

func TestNewTextDerivesWordCount(t *testing.T) {
	text, err := NewText(TextDraft{
		Title: "T", Content: "  one   two\nthree\t four  ",
		LanguageID: NewID(), ProficiencyLevel: ProficiencyA1,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, text.WordCount)

	content := "five words are now here"
	text.Apply(TextPatch{Content: &content})
	assert.Equal(t, 5, text.WordCount)
}

func TestTextTagIDsAreASortedSet(t *testing.T) {
	a, b := NewID(), NewID()
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}

	text, err := NewText(TextDraft{
		Title: "T", Content: "c",
		LanguageID: NewID(), ProficiencyLevel: ProficiencyA1,
		TagIDs: []string{hi, lo, hi},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{lo, hi}, text.TagIDs)

	empty := []string{}
	text.Apply(TextPatch{TagIDs: &empty})
	assert.Empty(t, text.TagIDs)
}

func TestNewUserVocabularyItemDefaults(t *testing.T) {
	item, err := NewUserVocabularyItem(UserVocabularyItemDraft{
		UserVocabularyID: NewID(), Term: "saudade",
	})
	require.NoError(t, err)
	assert.Equal(t, VocabularyItemNew, item.Status)
	assert.Equal(t, ProficiencyA1, item.ConfidenceLevel)
	assert.Zero(t, item.TimesReviewed)

	// Explicit values are kept.
	item, err = NewUserVocabularyItem(UserVocabularyItemDraft{
		UserVocabularyID: NewID(), Term: "saudade",
		Status: VocabularyItemKnown, ConfidenceLevel: ProficiencyC2,
	})
	require.NoError(t, err)
	assert.Equal(t, VocabularyItemKnown, item.Status)
	assert.Equal(t, ProficiencyC2, item.ConfidenceLevel)

	_, err = NewUserVocabularyItem(UserVocabularyItemDraft{
		UserVocabularyID: NewID(), Term: "x", Status: "FORGOTTEN",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "status", verr.Field)
}

func TestVocabularyItemPatch(t *testing.T) {
	item, err := NewUserVocabularyItem(UserVocabularyItemDraft{
		UserVocabularyID: NewID(), Term: "haus",
	})
	require.NoError(t, err)

	status := VocabularyItemLearning
	reviewed := 2
	notes := "seen in chapter one"
	item.Apply(UserVocabularyItemPatch{
		Status: &status, TimesReviewed: &reviewed, Notes: &notes,
	})
	assert.Equal(t, VocabularyItemLearning, item.Status)
	assert.Equal(t, 2, item.TimesReviewed)
	require.NotNil(t, item.Notes)
	assert.Equal(t, "seen in chapter one", *item.Notes)
	assert.Equal(t, "haus", item.Term)
}

func TestPatchClearFlagsNullOptionalFields(t *testing.T) {
	item, err := NewUserVocabularyItem(UserVocabularyItemDraft{
		UserVocabularyID: NewID(), Term: "haus",
	})
	require.NoError(t, err)

	lemma := "haus"
	notes := "neuter noun"
	freq := 0.42
	item.Apply(UserVocabularyItemPatch{Lemma: &lemma, Notes: &notes, Frequency: &freq})
	require.NotNil(t, item.Lemma)
	require.NotNil(t, item.Notes)
	require.NotNil(t, item.Frequency)

	item.Apply(UserVocabularyItemPatch{ClearLemma: true, ClearNotes: true, ClearFrequency: true})
	assert.Nil(t, item.Lemma)
	assert.Nil(t, item.Notes)
	assert.Nil(t, item.Frequency)
	assert.Equal(t, "haus", item.Term)

	// The clear flag wins when the pointer is set alongside it.
	item.Apply(UserVocabularyItemPatch{Notes: &notes, ClearNotes: true})
	assert.Nil(t, item.Notes)
}

func TestUserPatchClearsLastActiveAt(t *testing.T) {
	lang := NewID()
	user, err := NewUser(UserDraft{
		Email: "t@example.com", Username: "t", PasswordHash: "x",
		FirstName: "T", LastName: "U",
		NativeLanguageID: lang, CurrentLanguageID: lang,
	})
	require.NoError(t, err)

	active := Now()
	user.Apply(UserPatch{LastActiveAt: &active})
	require.NotNil(t, user.LastActiveAt)

	user.Apply(UserPatch{ClearLastActiveAt: true})
	assert.Nil(t, user.LastActiveAt)
}

func TestCountWords(t *testing.T) {
	assert.Zero(t, CountWords(""))
	assert.Zero(t, CountWords("   \n\t  "))
	assert.Equal(t, 1, CountWords("word"))
	assert.Equal(t, 9, CountWords("The quick brown fox jumps over the lazy dog."))
}
