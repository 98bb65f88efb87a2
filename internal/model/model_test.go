package model

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexiglow/lexistore/internal/domain"
)

func TestRegistryDeclaresEveryEntity(t *testing.T) {
	want := []string{
		"Language", "User", "UserLanguage", "Text",
		"TextTag", "TextTagAssociation", "UserVocabulary", "UserVocabularyItem",
	}

	defs := Definitions()
	var got []string
	for _, d := range defs {
		got = append(got, d.Entity)
	}
	assert.Equal(t, want, got)
}

func TestRegistryReferencesResolve(t *testing.T) {
	// Every reference must target a declared entity, and targets must be
	// declared before their dependents so relational DDL can install
	// foreign keys in one pass.
	seen := map[string]bool{}
	for _, d := range Definitions() {
		for _, r := range d.Refs {
			_, ok := Lookup(r.Target)
			assert.True(t, ok, "%s.%s targets undeclared entity %s", d.Entity, r.Field, r.Target)
			assert.True(t, seen[r.Target] || r.Target == d.Entity,
				"%s declared before its target %s", d.Entity, r.Target)
			_, ok = d.Field(r.Field)
			assert.True(t, ok, "%s.%s is not a declared field", d.Entity, r.Field)
		}
		seen[d.Entity] = true
	}
}

func TestUniqueScopesCoverDeclaredFields(t *testing.T) {
	for _, d := range Definitions() {
		for _, u := range d.Uniques {
			for _, f := range u.Fields {
				_, ok := d.Field(f)
				assert.True(t, ok, "unique %s names undeclared field %s.%s", u.Name, d.Entity, f)
			}
		}
	}
}

func TestDependentsOf(t *testing.T) {
	byEntity := func(entity string) map[string]Policy {
		out := map[string]Policy{}
		for _, dep := range DependentsOf(entity) {
			out[dep.Def.Entity+"."+dep.Ref.Field] = dep.Ref.OnDelete
		}
		return out
	}

	assert.Equal(t, map[string]Policy{
		"User.nativeLanguageId":     Restrict,
		"User.currentLanguageId":    Restrict,
		"UserLanguage.languageId":   Cascade,
		"Text.languageId":           Restrict,
		"UserVocabulary.languageId": Restrict,
	}, byEntity("Language"))

	assert.Equal(t, map[string]Policy{
		"UserLanguage.userId":   Cascade,
		"Text.userId":           SetNull,
		"UserVocabulary.userId": Cascade,
	}, byEntity("User"))

	assert.Equal(t, map[string]Policy{
		"TextTagAssociation.textId": Cascade,
	}, byEntity("Text"))

	assert.Empty(t, DependentsOf("UserVocabularyItem"))
}

func TestHasUpdatedAtAndRequired(t *testing.T) {
	lang, _ := Lookup("Language")
	assert.False(t, lang.HasUpdatedAt())

	user, _ := Lookup("User")
	assert.True(t, user.HasUpdatedAt())
	assert.NotContains(t, user.Required(), "lastActiveAt")
	assert.Contains(t, user.Required(), "email")
}

// staticChecker answers existence from a fixed set.
type staticChecker map[string]bool

func (c staticChecker) Exists(_ context.Context, entity, id string) (bool, error) {
	return c[entity+"/"+id], nil
}

func TestCheckReferences(t *testing.T) {
	ctx := context.Background()
	langID := domain.NewID()
	ghost := domain.NewID()

	checker := staticChecker{"Language/" + langID: true}

	err := CheckReferences(ctx, checker, "User", []Reference{
		{Field: "nativeLanguageId", Target: "Language", ID: langID},
	})
	assert.NoError(t, err)

	err = CheckReferences(ctx, checker, "User", []Reference{
		{Field: "nativeLanguageId", Target: "Language", ID: ghost},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nativeLanguageId", verr.Field)
	assert.Contains(t, verr.Reason, "Language")

	// Unset nullable references are skipped.
	err = CheckReferences(ctx, checker, "Text", []Reference{
		{Field: "authorId", Target: "User", ID: ""},
	})
	assert.NoError(t, err)
}

func TestTextReferencesIncludeTags(t *testing.T) {
	author := domain.NewID()
	tagA, tagB := domain.NewID(), domain.NewID()
	text := &domain.Text{
		LanguageID: domain.NewID(),
		AuthorID:   &author,
		TagIDs:     []string{tagA, tagB},
	}

	refs := TextReferences(text)
	require.Len(t, refs, 4)
	assert.Equal(t, "Language", refs[0].Target)
	assert.Equal(t, "User", refs[1].Target)
	assert.Equal(t, "TextTag", refs[2].Target)
	assert.Equal(t, "TextTag", refs[3].Target)

	// System-authored texts carry no author reference.
	text.AuthorID = nil
	assert.Len(t, TextReferences(text), 3)
}
