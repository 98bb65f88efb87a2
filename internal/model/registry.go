package model

import "github.com/lexiglow/lexistore/internal/domain"

// Definitions returns the declaration of every persisted entity. The
// slice is rebuilt on each call so callers cannot mutate the registry.
func Definitions() []Def {
	return []Def{
		{
			Entity: "Language",
			Fields: []Field{
				{Name: "id", Kind: KindString},
				{Name: "name", Kind: KindString},
				{Name: "code", Kind: KindString},
				{Name: "nativeName", Kind: KindString},
				{Name: "createdAt", Kind: KindTime},
			},
			Key: []string{"id"},
			Uniques: []Unique{
				{Name: "uq_Language_code", Fields: []string{"code"}},
			},
		},
		{
			Entity: "User",
			Fields: []Field{
				{Name: "id", Kind: KindString},
				{Name: "email", Kind: KindString},
				{Name: "username", Kind: KindString},
				{Name: "passwordHash", Kind: KindString},
				{Name: "firstName", Kind: KindString},
				{Name: "lastName", Kind: KindString},
				{Name: "nativeLanguageId", Kind: KindString},
				{Name: "currentLanguageId", Kind: KindString},
				{Name: "createdAt", Kind: KindTime},
				{Name: "updatedAt", Kind: KindTime},
				{Name: "lastActiveAt", Kind: KindTime, Nullable: true},
			},
			Key: []string{"id"},
			Uniques: []Unique{
				{Name: "uq_User_email", Fields: []string{"email"}},
				{Name: "uq_User_username", Fields: []string{"username"}},
			},
			Refs: []Ref{
				{Field: "nativeLanguageId", Target: "Language", OnDelete: Restrict},
				{Field: "currentLanguageId", Target: "Language", OnDelete: Restrict},
			},
		},
		{
			Entity: "UserLanguage",
			Fields: []Field{
				{Name: "userId", Kind: KindString},
				{Name: "languageId", Kind: KindString},
				{Name: "proficiencyLevel", Kind: KindString, Enum: domain.ProficiencyLevelValues()},
				{Name: "startedAt", Kind: KindTime},
				{Name: "createdAt", Kind: KindTime},
				{Name: "updatedAt", Kind: KindTime},
			},
			Key: []string{"userId", "languageId"},
			Refs: []Ref{
				{Field: "userId", Target: "User", OnDelete: Cascade},
				{Field: "languageId", Target: "Language", OnDelete: Cascade},
			},
		},
		{
			Entity: "Text",
			Fields: []Field{
				{Name: "id", Kind: KindString},
				{Name: "title", Kind: KindString},
				{Name: "content", Kind: KindString},
				{Name: "languageId", Kind: KindString},
				{Name: "userId", Kind: KindString, Nullable: true},
				{Name: "proficiencyLevel", Kind: KindString, Enum: domain.ProficiencyLevelValues()},
				{Name: "wordCount", Kind: KindInt},
				{Name: "isPublic", Kind: KindBool},
				{Name: "source", Kind: KindString, Nullable: true},
				{Name: "createdAt", Kind: KindTime},
				{Name: "updatedAt", Kind: KindTime},
			},
			Key: []string{"id"},
			Refs: []Ref{
				{Field: "languageId", Target: "Language", OnDelete: Restrict},
				{Field: "userId", Target: "User", OnDelete: SetNull},
			},
		},
		{
			Entity: "TextTag",
			Fields: []Field{
				{Name: "id", Kind: KindString},
				{Name: "name", Kind: KindString},
				{Name: "description", Kind: KindString, Nullable: true},
			},
			Key: []string{"id"},
			Uniques: []Unique{
				{Name: "uq_TextTag_name", Fields: []string{"name"}},
			},
		},
		{
			Entity: "TextTagAssociation",
			Fields: []Field{
				{Name: "textId", Kind: KindString},
				{Name: "tagId", Kind: KindString},
			},
			Key: []string{"textId", "tagId"},
			Refs: []Ref{
				{Field: "textId", Target: "Text", OnDelete: Cascade},
				{Field: "tagId", Target: "TextTag", OnDelete: Cascade},
			},
		},
		{
			Entity: "UserVocabulary",
			Fields: []Field{
				{Name: "id", Kind: KindString},
				{Name: "userId", Kind: KindString},
				{Name: "languageId", Kind: KindString},
				{Name: "name", Kind: KindString},
				{Name: "createdAt", Kind: KindTime},
				{Name: "updatedAt", Kind: KindTime},
			},
			Key: []string{"id"},
			Uniques: []Unique{
				{Name: "uq_UserVocabulary_user_language", Fields: []string{"userId", "languageId"}},
			},
			Refs: []Ref{
				{Field: "userId", Target: "User", OnDelete: Cascade},
				{Field: "languageId", Target: "Language", OnDelete: Restrict},
			},
		},
		{
			Entity: "UserVocabularyItem",
			Fields: []Field{
				{Name: "id", Kind: KindString},
				{Name: "userVocabularyId", Kind: KindString},
				{Name: "term", Kind: KindString},
				{Name: "lemma", Kind: KindString, Nullable: true},
				{Name: "stemma", Kind: KindString, Nullable: true},
				{Name: "partOfSpeech", Kind: KindString, Nullable: true, Enum: domain.PartOfSpeechValues()},
				{Name: "frequency", Kind: KindFloat, Nullable: true},
				{Name: "status", Kind: KindString, Enum: domain.VocabularyItemStatusValues()},
				{Name: "timesReviewed", Kind: KindInt},
				{Name: "confidenceLevel", Kind: KindString, Enum: domain.ProficiencyLevelValues()},
				{Name: "notes", Kind: KindString, Nullable: true},
				{Name: "createdAt", Kind: KindTime},
				{Name: "updatedAt", Kind: KindTime},
			},
			Key: []string{"id"},
			Uniques: []Unique{
				{Name: "uq_UserVocabularyItem_vocab_term", Fields: []string{"userVocabularyId", "term"}},
			},
			Refs: []Ref{
				{Field: "userVocabularyId", Target: "UserVocabulary", OnDelete: Cascade},
			},
		},
	}
}
