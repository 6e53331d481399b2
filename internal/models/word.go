package models

// MCQ is a multiple-choice facet of a word card: the correct answer plus
// the authored options (the correct one included, at most four total).
type MCQ struct {
	Correct string   `json:"correct"`
	Options []string `json:"options"`
}

// WordCard is one entry of a biome's word-list document.
type WordCard struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Synonyms   MCQ    `json:"synonyms"`
	Antonyms   MCQ    `json:"antonyms"`
}

// HasSynonyms reports whether the card carries usable synonym options.
func (w WordCard) HasSynonyms() bool {
	return len(w.Synonyms.Options) > 0
}

// HasAntonyms reports whether the card carries usable antonym options.
func (w WordCard) HasAntonyms() bool {
	return len(w.Antonyms.Options) > 0
}
