// Package storetest is the engine-conformance suite: one set of
// scenarios that every store bundle must pass identically, so the two
// engines stay behaviorally interchangeable. Engine test packages call
// Run with a factory producing a fresh, empty bundle per scenario.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiglow/lexistore/internal/domain"
	"github.com/lexiglow/lexistore/internal/store"
)

// Factory returns a fresh, empty store bundle. It is called once per
// scenario; cleanup belongs to the factory via t.Cleanup.
type Factory func(t *testing.T) *store.Stores

// Run executes the conformance scenarios against the given engine.
func Run(t *testing.T, factory Factory) {
	scenarios := []struct {
		name string
		fn   func(t *testing.T, s *store.Stores)
	}{
		{"LanguageRoundTrip", testLanguageRoundTrip},
		{"LanguageCodeConflict", testLanguageCodeConflict},
		{"LanguageDeleteRestricted", testLanguageDeleteRestricted},
		{"LanguageDeleteCascadesAssociations", testLanguageDeleteCascadesAssociations},
		{"UserRoundTrip", testUserRoundTrip},
		{"UserUniqueConflicts", testUserUniqueConflicts},
		{"UserPartialUpdate", testUserPartialUpdate},
		{"PatchClearsNullableFields", testPatchClearsNullableFields},
		{"UserUpdateAdvancesTimestamp", testUserUpdateAdvancesTimestamp},
		{"UserBadReference", testUserBadReference},
		{"UserDeleteCascades", testUserDeleteCascades},
		{"UserLanguageLifecycle", testUserLanguageLifecycle},
		{"TextTagsRoundTrip", testTextTagsRoundTrip},
		{"TextTagReplaceOnUpdate", testTextTagReplaceOnUpdate},
		{"TextListFilters", testTextListFilters},
		{"TextTagDeleteKeepsTexts", testTextTagDeleteKeepsTexts},
		{"VocabularyUniquePerLanguage", testVocabularyUniquePerLanguage},
		{"VocabularyItemLifecycle", testVocabularyItemLifecycle},
		{"VocabularyDeleteCascadesItems", testVocabularyDeleteCascadesItems},
		{"NotFound", testNotFound},
		{"ValidationErrors", testValidationErrors},
		{"ConcurrentDuplicateEmail", testConcurrentDuplicateEmail},
		{"ListPagination", testListPagination},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			sc.fn(t, factory(t))
		})
	}
}

func seedLanguage(t *testing.T, s *store.Stores, code string) *domain.Language {
	t.Helper()
	lang, err := s.Languages.Create(context.Background(), domain.LanguageDraft{
		Name:       "Language " + code,
		Code:       code,
		NativeName: "Native " + code,
	})
	require.NoError(t, err)
	return lang
}

func seedUser(t *testing.T, s *store.Stores, lang *domain.Language, handle string) *domain.User {
	t.Helper()
	user, err := s.Users.Create(context.Background(), domain.UserDraft{
		Email:             handle + "@example.com",
		Username:          handle,
		PasswordHash:      "argon2id$dummy",
		FirstName:         "Test",
		LastName:          "User",
		NativeLanguageID:  lang.ID,
		CurrentLanguageID: lang.ID,
	})
	require.NoError(t, err)
	return user
}

func seedTag(t *testing.T, s *store.Stores, name string) *domain.TextTag {
	t.Helper()
	tag, err := s.TextTags.Create(context.Background(), domain.TextTagDraft{Name: name})
	require.NoError(t, err)
	return tag
}

func seedText(t *testing.T, s *store.Stores, lang *domain.Language, author *string, tagIDs []string) *domain.Text {
	t.Helper()
	text, err := s.Texts.Create(context.Background(), domain.TextDraft{
		Title:            "A Walk in the Park",
		Content:          "The quick brown fox jumps over the lazy dog.",
		LanguageID:       lang.ID,
		AuthorID:         author,
		ProficiencyLevel: domain.ProficiencyB1,
		IsPublic:         true,
		TagIDs:           tagIDs,
	})
	require.NoError(t, err)
	return text
}

func seedVocabulary(t *testing.T, s *store.Stores, user *domain.User, lang *domain.Language) *domain.UserVocabulary {
	t.Helper()
	vocab, err := s.Vocabularies.Create(context.Background(), domain.UserVocabularyDraft{
		UserID:     user.ID,
		LanguageID: lang.ID,
		Name:       "My " + lang.Code + " words",
	})
	require.NoError(t, err)
	return vocab
}

func testLanguageRoundTrip(t *testing.T, s *store.Stores) {
	ctx := context.Background()

	created := seedLanguage(t, s, "de")
	require.True(t, domain.ValidID(created.ID))

	got, err := s.Languages.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "de", got.Code)
	assert.Equal(t, "Language de", got.Name)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "createdAt must round-trip: %v != %v", created.CreatedAt, got.CreatedAt)

	byCode, err := s.Languages.GetByCode(ctx, "de")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byCode.ID)

	newName := "German"
	updated, err := s.Languages.Update(ctx, created.ID, domain.LanguagePatch{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "German", updated.Name)
	assert.Equal(t, "de", updated.Code)

	require.NoError(t, s.Languages.Delete(ctx, created.ID))
	_, err = s.Languages.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, store.ErrLanguageNotFound)
}

func testLanguageCodeConflict(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	seedLanguage(t, s, "fr")

	_, err := s.Languages.Create(ctx, domain.LanguageDraft{
		Name: "French Again", Code: "fr", NativeName: "Francais",
	})
	assert.ErrorIs(t, err, store.ErrLanguageCodeExists)
	assert.True(t, store.IsConflict(err))
}

func testLanguageDeleteRestricted(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "es")
	seedUser(t, s, lang, "pilar")

	err := s.Languages.Delete(ctx, lang.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrConflict)
	assert.Contains(t, err.Error(), "User")

	// The language must survive a failed delete untouched.
	_, err = s.Languages.GetByID(ctx, lang.ID)
	assert.NoError(t, err)
}

func testLanguageDeleteCascadesAssociations(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	native := seedLanguage(t, s, "en")
	target := seedLanguage(t, s, "it")
	user := seedUser(t, s, native, "marco")

	_, err := s.UserLanguages.Create(ctx, domain.UserLanguageDraft{
		UserID:           user.ID,
		LanguageID:       target.ID,
		ProficiencyLevel: domain.ProficiencyA2,
		StartedAt:        time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, s.Languages.Delete(ctx, target.ID))

	_, err = s.UserLanguages.Get(ctx, user.ID, target.ID)
	assert.ErrorIs(t, err, store.ErrUserLanguageNotFound)
}

func testUserRoundTrip(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	created := seedUser(t, s, lang, "ada")

	got, err := s.Users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
	assert.Nil(t, got.LastActiveAt)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt))

	byEmail, err := s.Users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := s.Users.GetByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)
}

func testUserUniqueConflicts(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	seedUser(t, s, lang, "grace")

	_, err := s.Users.Create(ctx, domain.UserDraft{
		Email: "grace@example.com", Username: "grace2", PasswordHash: "x",
		FirstName: "G", LastName: "H",
		NativeLanguageID: lang.ID, CurrentLanguageID: lang.ID,
	})
	assert.ErrorIs(t, err, store.ErrEmailExists)

	_, err = s.Users.Create(ctx, domain.UserDraft{
		Email: "grace2@example.com", Username: "grace", PasswordHash: "x",
		FirstName: "G", LastName: "H",
		NativeLanguageID: lang.ID, CurrentLanguageID: lang.ID,
	})
	assert.ErrorIs(t, err, store.ErrUsernameExists)
}

func testUserPartialUpdate(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	created := seedUser(t, s, lang, "linus")

	first := "Linus-Updated"
	updated, err := s.Users.Update(ctx, created.ID, domain.UserPatch{FirstName: &first})
	require.NoError(t, err)

	assert.Equal(t, "Linus-Updated", updated.FirstName)
	// Untouched fields survive the patch.
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Username, updated.Username)
	assert.Equal(t, created.LastName, updated.LastName)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
}

func testPatchClearsNullableFields(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	user := seedUser(t, s, lang, "nora")

	active := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated, err := s.Users.Update(ctx, user.ID, domain.UserPatch{LastActiveAt: &active})
	require.NoError(t, err)
	require.NotNil(t, updated.LastActiveAt)

	updated, err = s.Users.Update(ctx, user.ID, domain.UserPatch{ClearLastActiveAt: true})
	require.NoError(t, err)
	assert.Nil(t, updated.LastActiveAt)

	got, err := s.Users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastActiveAt)

	text := seedText(t, s, lang, nil, nil)
	source := "https://example.com/story"
	_, err = s.Texts.Update(ctx, text.ID, domain.TextPatch{Source: &source})
	require.NoError(t, err)

	cleared, err := s.Texts.Update(ctx, text.ID, domain.TextPatch{ClearSource: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.Source)

	gotText, err := s.Texts.GetByID(ctx, text.ID)
	require.NoError(t, err)
	assert.Nil(t, gotText.Source)

	vocab := seedVocabulary(t, s, user, lang)
	notes := "from the first chapter"
	item, err := s.VocabularyItems.Create(ctx, domain.UserVocabularyItemDraft{
		UserVocabularyID: vocab.ID, Term: "garten", Notes: &notes,
	})
	require.NoError(t, err)
	require.NotNil(t, item.Notes)

	_, err = s.VocabularyItems.Update(ctx, item.ID, domain.UserVocabularyItemPatch{ClearNotes: true})
	require.NoError(t, err)

	gotItem, err := s.VocabularyItems.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Nil(t, gotItem.Notes)
}

func testUserUpdateAdvancesTimestamp(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	created := seedUser(t, s, lang, "tick")

	// The engines stamp updatedAt at millisecond resolution.
	time.Sleep(15 * time.Millisecond)

	name := "Tock"
	updated, err := s.Users.Update(ctx, created.ID, domain.UserPatch{FirstName: &name})
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt),
		"updatedAt must advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

	got, err := s.Users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.UpdatedAt.Equal(updated.UpdatedAt))
}

func testUserBadReference(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")

	_, err := s.Users.Create(ctx, domain.UserDraft{
		Email: "ghost@example.com", Username: "ghost", PasswordHash: "x",
		FirstName: "G", LastName: "H",
		NativeLanguageID:  domain.NewID(),
		CurrentLanguageID: lang.ID,
	})
	require.Error(t, err)
	assert.True(t, store.IsValidation(err))

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nativeLanguageId", verr.Field)
}

func testUserDeleteCascades(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	user := seedUser(t, s, lang, "casey")

	_, err := s.UserLanguages.Create(ctx, domain.UserLanguageDraft{
		UserID: user.ID, LanguageID: lang.ID,
		ProficiencyLevel: domain.ProficiencyB2, StartedAt: time.Now(),
	})
	require.NoError(t, err)

	vocab := seedVocabulary(t, s, user, lang)
	item, err := s.VocabularyItems.Create(ctx, domain.UserVocabularyItemDraft{
		UserVocabularyID: vocab.ID, Term: "haus",
	})
	require.NoError(t, err)

	text := seedText(t, s, lang, &user.ID, nil)

	require.NoError(t, s.Users.Delete(ctx, user.ID))

	// Associations and vocabularies cascade, items transitively.
	_, err = s.UserLanguages.Get(ctx, user.ID, lang.ID)
	assert.ErrorIs(t, err, store.ErrUserLanguageNotFound)
	_, err = s.Vocabularies.GetByID(ctx, vocab.ID)
	assert.ErrorIs(t, err, store.ErrUserVocabularyNotFound)
	_, err = s.VocabularyItems.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrUserVocabularyItemNotFound)

	// The authored text survives with its author reference nulled.
	orphan, err := s.Texts.GetByID(ctx, text.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.AuthorID)
}

func testUserLanguageLifecycle(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	target := seedLanguage(t, s, "pt")
	user := seedUser(t, s, lang, "jo")

	started := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	created, err := s.UserLanguages.Create(ctx, domain.UserLanguageDraft{
		UserID: user.ID, LanguageID: target.ID,
		ProficiencyLevel: domain.ProficiencyA1, StartedAt: started,
	})
	require.NoError(t, err)

	got, err := s.UserLanguages.Get(ctx, user.ID, target.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ProficiencyA1, got.ProficiencyLevel)
	assert.True(t, started.Equal(got.StartedAt))

	// A second association for the same pair conflicts.
	_, err = s.UserLanguages.Create(ctx, domain.UserLanguageDraft{
		UserID: user.ID, LanguageID: target.ID,
		ProficiencyLevel: domain.ProficiencyA2, StartedAt: started,
	})
	assert.ErrorIs(t, err, store.ErrUserLanguageExists)

	level := domain.ProficiencyB1
	updated, err := s.UserLanguages.Update(ctx, user.ID, target.ID, domain.UserLanguagePatch{
		ProficiencyLevel: &level,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ProficiencyB1, updated.ProficiencyLevel)

	list, err := s.UserLanguages.ListByUser(ctx, user.ID, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.LanguageID, list[0].LanguageID)

	require.NoError(t, s.UserLanguages.Delete(ctx, user.ID, target.ID))
	assert.ErrorIs(t, s.UserLanguages.Delete(ctx, user.ID, target.ID), store.ErrUserLanguageNotFound)
}

func testTextTagsRoundTrip(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	tagA := seedTag(t, s, "animals")
	tagB := seedTag(t, s, "beginner")

	// Duplicated ids collapse; the stored set comes back sorted.
	created := seedText(t, s, lang, nil, []string{tagB.ID, tagA.ID, tagB.ID})
	require.Len(t, created.TagIDs, 2)

	got, err := s.Texts.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.TagIDs, got.TagIDs)
	assert.Equal(t, 9, got.WordCount)
	assert.Nil(t, got.AuthorID)

	// Tag names are unique.
	_, err = s.TextTags.Create(ctx, domain.TextTagDraft{Name: "animals"})
	assert.ErrorIs(t, err, store.ErrTagNameExists)

	byName, err := s.TextTags.GetByName(ctx, "beginner")
	require.NoError(t, err)
	assert.Equal(t, tagB.ID, byName.ID)
}

func testTextTagReplaceOnUpdate(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	tagA := seedTag(t, s, "animals")
	tagB := seedTag(t, s, "beginner")
	text := seedText(t, s, lang, nil, []string{tagA.ID})

	newTags := []string{tagB.ID}
	updated, err := s.Texts.Update(ctx, text.ID, domain.TextPatch{TagIDs: &newTags})
	require.NoError(t, err)
	assert.Equal(t, []string{tagB.ID}, updated.TagIDs)

	// Content changes recompute the derived word count.
	content := "one two three"
	updated, err = s.Texts.Update(ctx, text.ID, domain.TextPatch{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.WordCount)
	assert.Equal(t, []string{tagB.ID}, updated.TagIDs)
}

func testTextListFilters(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	langEN := seedLanguage(t, s, "en")
	langDE := seedLanguage(t, s, "de")
	user := seedUser(t, s, langEN, "author")
	tag := seedTag(t, s, "stories")

	public := seedText(t, s, langEN, &user.ID, []string{tag.ID})

	private, err := s.Texts.Create(ctx, domain.TextDraft{
		Title: "Private Notes", Content: "secret words",
		LanguageID: langDE.ID, ProficiencyLevel: domain.ProficiencyC1,
		IsPublic: false,
	})
	require.NoError(t, err)

	byLang, err := s.Texts.List(ctx, store.TextFilter{LanguageID: &langEN.ID}, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, byLang, 1)
	assert.Equal(t, public.ID, byLang[0].ID)

	byAuthor, err := s.Texts.List(ctx, store.TextFilter{AuthorID: &user.ID}, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)

	level := domain.ProficiencyC1
	byLevel, err := s.Texts.List(ctx, store.TextFilter{Level: &level}, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, byLevel, 1)
	assert.Equal(t, private.ID, byLevel[0].ID)

	publicOnly, err := s.Texts.List(ctx, store.TextFilter{PublicOnly: true}, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, publicOnly, 1)
	assert.Equal(t, public.ID, publicOnly[0].ID)

	byTag, err := s.Texts.List(ctx, store.TextFilter{TagID: &tag.ID}, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, byTag, 1)
	assert.Equal(t, public.ID, byTag[0].ID)
	assert.Equal(t, []string{tag.ID}, byTag[0].TagIDs)
}

func testTextTagDeleteKeepsTexts(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	tag := seedTag(t, s, "doomed")
	text := seedText(t, s, lang, nil, []string{tag.ID})

	require.NoError(t, s.TextTags.Delete(ctx, tag.ID))

	got, err := s.Texts.GetByID(ctx, text.ID)
	require.NoError(t, err)
	assert.Empty(t, got.TagIDs)
}

func testVocabularyUniquePerLanguage(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	other := seedLanguage(t, s, "sv")
	user := seedUser(t, s, lang, "ingrid")

	first := seedVocabulary(t, s, user, other)

	_, err := s.Vocabularies.Create(ctx, domain.UserVocabularyDraft{
		UserID: user.ID, LanguageID: other.ID, Name: "Second attempt",
	})
	assert.ErrorIs(t, err, store.ErrVocabularyExists)

	got, err := s.Vocabularies.GetByUserAndLanguage(ctx, user.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)

	// Deleting a language with a vocabulary is restricted.
	err = s.Languages.Delete(ctx, other.ID)
	assert.ErrorIs(t, err, store.ErrConflict)
}

func testVocabularyItemLifecycle(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	user := seedUser(t, s, lang, "viktor")
	vocab := seedVocabulary(t, s, user, lang)

	created, err := s.VocabularyItems.Create(ctx, domain.UserVocabularyItemDraft{
		UserVocabularyID: vocab.ID,
		Term:             "serendipity",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VocabularyItemNew, created.Status)
	assert.Equal(t, domain.ProficiencyA1, created.ConfidenceLevel)
	assert.Equal(t, 0, created.TimesReviewed)

	_, err = s.VocabularyItems.Create(ctx, domain.UserVocabularyItemDraft{
		UserVocabularyID: vocab.ID,
		Term:             "serendipity",
	})
	assert.ErrorIs(t, err, store.ErrTermExists)

	status := domain.VocabularyItemLearning
	reviewed := 3
	updated, err := s.VocabularyItems.Update(ctx, created.ID, domain.UserVocabularyItemPatch{
		Status:        &status,
		TimesReviewed: &reviewed,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.VocabularyItemLearning, updated.Status)
	assert.Equal(t, 3, updated.TimesReviewed)
	assert.Equal(t, "serendipity", updated.Term)

	known := domain.VocabularyItemKnown
	filtered, err := s.VocabularyItems.ListByVocabulary(ctx, vocab.ID,
		store.VocabularyItemFilter{Status: &known}, store.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	all, err := s.VocabularyItems.ListByVocabulary(ctx, vocab.ID,
		store.VocabularyItemFilter{}, store.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func testVocabularyDeleteCascadesItems(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")
	user := seedUser(t, s, lang, "nils")
	vocab := seedVocabulary(t, s, user, lang)

	item, err := s.VocabularyItems.Create(ctx, domain.UserVocabularyItemDraft{
		UserVocabularyID: vocab.ID, Term: "fjord",
	})
	require.NoError(t, err)

	require.NoError(t, s.Vocabularies.Delete(ctx, vocab.ID))

	_, err = s.VocabularyItems.GetByID(ctx, item.ID)
	assert.ErrorIs(t, err, store.ErrUserVocabularyItemNotFound)
}

func testNotFound(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	id := domain.NewID()

	_, err := s.Languages.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrLanguageNotFound)
	assert.True(t, store.IsNotFound(err))

	_, err = s.Users.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.Texts.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrTextNotFound)

	_, err = s.TextTags.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrTextTagNotFound)

	_, err = s.Vocabularies.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrUserVocabularyNotFound)

	_, err = s.VocabularyItems.GetByID(ctx, id)
	assert.ErrorIs(t, err, store.ErrUserVocabularyItemNotFound)

	_, err = s.UserLanguages.Get(ctx, id, id)
	assert.ErrorIs(t, err, store.ErrUserLanguageNotFound)

	assert.ErrorIs(t, s.Languages.Delete(ctx, id), store.ErrLanguageNotFound)
	assert.ErrorIs(t, s.Texts.Delete(ctx, id), store.ErrTextNotFound)

	_, err = s.Users.Update(ctx, id, domain.UserPatch{})
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func testValidationErrors(t *testing.T, s *store.Stores) {
	ctx := context.Background()
	lang := seedLanguage(t, s, "en")

	_, err := s.Users.Create(ctx, domain.UserDraft{
		Email: "not-an-email", Username: "u", PasswordHash: "x",
		FirstName: "A", LastName: "B",
		NativeLanguageID: lang.ID, CurrentLanguageID: lang.ID,
	})
	require.Error(t, err)
	assert.True(t, store.IsValidation(err))
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)

	_, err = s.Texts.Create(ctx, domain.TextDraft{
		Title: "T", Content: "c", LanguageID: lang.ID,
		ProficiencyLevel: "D1",
	})
	require.Error(t, err)
	assert.True(t, store.IsValidation(err))

	_, err = s.Languages.Create(ctx, domain.LanguageDraft{Name: "", Code: "xx", NativeName: "X"})
	require.Error(t, err)
	assert.True(t, store.IsValidation(err))
}

func testConcurrentDuplicateEmail(t *testing.T, s *store.Stores) {
	lang := seedLanguage(t, s, "en")

	draft := domain.UserDraft{
		Email: "race@example.com", Username: "racer", PasswordHash: "x",
		FirstName: "R", LastName: "C",
		NativeLanguageID: lang.ID, CurrentLanguageID: lang.ID,
	}

	const attempts = 4
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := draft
			d.Username = fmt.Sprintf("racer%d", i)
			_, errs[i] = s.Users.Create(context.Background(), d)
		}(i)
	}
	wg.Wait()

	var won int
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			assert.ErrorIs(t, err, store.ErrEmailExists)
		}
	}
	assert.Equal(t, 1, won, "exactly one concurrent create must win")
}

func testListPagination(t *testing.T, s *store.Stores) {
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		seedLanguage(t, s, fmt.Sprintf("l%d", i))
	}

	page1, err := s.Languages.List(ctx, store.ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page1, 2)

	page2, err := s.Languages.List(ctx, store.ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)

	rest, err := s.Languages.List(ctx, store.ListOptions{Limit: 10, Offset: 4})
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	all, err := s.Languages.List(ctx, store.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		ordered := prev.CreatedAt.Before(cur.CreatedAt) ||
			(prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID < cur.ID)
		assert.True(t, ordered, "listing must be chronologically stable")
	}
}
