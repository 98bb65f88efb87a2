package domain

// ProficiencyLevel is a CEFR language proficiency level.
type ProficiencyLevel string

const (
	ProficiencyA1 ProficiencyLevel = "A1"
	ProficiencyA2 ProficiencyLevel = "A2"
	ProficiencyB1 ProficiencyLevel = "B1"
	ProficiencyB2 ProficiencyLevel = "B2"
	ProficiencyC1 ProficiencyLevel = "C1"
	ProficiencyC2 ProficiencyLevel = "C2"
)

// ProficiencyLevelValues lists every valid CEFR level, in ascending order.
func ProficiencyLevelValues() []string {
	return []string{"A1", "A2", "B1", "B2", "C1", "C2"}
}

// PartOfSpeech is the grammatical category of a vocabulary item.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "NOUN"
	PartOfSpeechVerb         PartOfSpeech = "VERB"
	PartOfSpeechAdjective    PartOfSpeech = "ADJECTIVE"
	PartOfSpeechAdverb       PartOfSpeech = "ADVERB"
	PartOfSpeechPronoun      PartOfSpeech = "PRONOUN"
	PartOfSpeechPreposition  PartOfSpeech = "PREPOSITION"
	PartOfSpeechConjunction  PartOfSpeech = "CONJUNCTION"
	PartOfSpeechInterjection PartOfSpeech = "INTERJECTION"
	PartOfSpeechArticle      PartOfSpeech = "ARTICLE"
	PartOfSpeechOther        PartOfSpeech = "OTHER"
)

// PartOfSpeechValues lists every valid part-of-speech value.
func PartOfSpeechValues() []string {
	return []string{
		"NOUN", "VERB", "ADJECTIVE", "ADVERB", "PRONOUN",
		"PREPOSITION", "CONJUNCTION", "INTERJECTION", "ARTICLE", "OTHER",
	}
}

// VocabularyItemStatus tracks where a vocabulary item sits in the
// learning process.
type VocabularyItemStatus string

const (
	VocabularyItemNew      VocabularyItemStatus = "NEW"
	VocabularyItemLearning VocabularyItemStatus = "LEARNING"
	VocabularyItemKnown    VocabularyItemStatus = "KNOWN"
	VocabularyItemMastered VocabularyItemStatus = "MASTERED"
)

// VocabularyItemStatusValues lists every valid item status.
func VocabularyItemStatusValues() []string {
	return []string{"NEW", "LEARNING", "KNOWN", "MASTERED"}
}
