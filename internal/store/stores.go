package store

// Stores bundles one engine's repository implementations behind the
// uniform contract. Callers obtain a bundle from the active engine and
// never touch the underlying driver.
type Stores struct {
	Languages       LanguageStore
	Users           UserStore
	UserLanguages   UserLanguageStore
	Texts           TextStore
	TextTags        TextTagStore
	Vocabularies    UserVocabularyStore
	VocabularyItems UserVocabularyItemStore
}
