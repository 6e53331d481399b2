package models

import "time"

// Facet is one of the three question types a word can be quizzed on.
type Facet string

const (
	FacetSpelling Facet = "spelling"
	FacetSynonym  Facet = "synonym"
	FacetAntonym  Facet = "antonym"
)

// Facets lists all question facets in canonical order.
var Facets = []Facet{FacetSpelling, FacetSynonym, FacetAntonym}

// Retirement thresholds. A facet stops being quizzed once it has been
// answered correctly FacetRetireCount times; the whole word retires once
// every facet has been answered correctly WordRetireCount times.
const (
	FacetRetireCount = 5
	WordRetireCount  = 3
)

// Scope identifies the (dimension, biome) a record belongs to.
type Scope struct {
	Dimension string
	Biome     string
}

func (s Scope) String() string {
	return s.Dimension + "/" + s.Biome
}

// WordMastery is the single persisted mastery record for a word within a
// scope. It unifies the quiz-side facet counters and the study-side streak
// tracking so both engines read and write one row.
type WordMastery struct {
	Dimension string
	Biome     string
	Term      string

	SpellingCorrect int
	SynonymCorrect  int
	AntonymCorrect  int

	// Retired is monotonic: set the first time every facet counter
	// reaches WordRetireCount, never cleared by normal play.
	Retired bool

	AnsweredCorrectOnce bool
	MasteryStreak       int
	Mastered            bool
	TotalFlips          int
	LastResult          string // "", "success" or "fail"

	UpdatedAt time.Time
}

// NewWordMastery returns a zeroed record for the given word.
func NewWordMastery(scope Scope, term string) *WordMastery {
	return &WordMastery{
		Dimension: scope.Dimension,
		Biome:     scope.Biome,
		Term:      term,
	}
}

// Scope returns the record's (dimension, biome) key.
func (m *WordMastery) Scope() Scope {
	return Scope{Dimension: m.Dimension, Biome: m.Biome}
}

// FacetCount returns the correct-answer counter for a facet.
func (m *WordMastery) FacetCount(f Facet) int {
	switch f {
	case FacetSpelling:
		return m.SpellingCorrect
	case FacetSynonym:
		return m.SynonymCorrect
	case FacetAntonym:
		return m.AntonymCorrect
	}
	return 0
}

// BumpFacet increments a facet counter by one.
func (m *WordMastery) BumpFacet(f Facet) {
	switch f {
	case FacetSpelling:
		m.SpellingCorrect++
	case FacetSynonym:
		m.SynonymCorrect++
	case FacetAntonym:
		m.AntonymCorrect++
	}
}

// FacetRetired reports whether a single facet has been answered correctly
// often enough to stop appearing in quizzes.
func (m *WordMastery) FacetRetired(f Facet) bool {
	return m.FacetCount(f) >= FacetRetireCount
}

// WordRetired reports whether the whole word is retired: either the
// monotonic flag is set, or every facet counter has reached
// WordRetireCount.
func (m *WordMastery) WordRetired() bool {
	if m.Retired {
		return true
	}
	return m.SpellingCorrect >= WordRetireCount &&
		m.SynonymCorrect >= WordRetireCount &&
		m.AntonymCorrect >= WordRetireCount
}

// WordProgress is the quiz-facing view of a mastery record.
type WordProgress struct {
	Spelling int  `json:"spelling"`
	Synonym  int  `json:"synonym"`
	Antonym  int  `json:"antonym"`
	Retired  bool `json:"retired"`
}

// Progress derives the quiz-facing view.
func (m *WordMastery) Progress() WordProgress {
	return WordProgress{
		Spelling: m.SpellingCorrect,
		Synonym:  m.SynonymCorrect,
		Antonym:  m.AntonymCorrect,
		Retired:  m.WordRetired(),
	}
}

// WordStatus is the study-facing view of a mastery record.
type WordStatus struct {
	AnsweredCorrectOnce bool   `json:"answeredCorrectOnce"`
	MasteryStreak       int    `json:"masteryStreak"`
	Mastered            bool   `json:"mastered"`
	TotalFlips          int    `json:"totalFlips"`
	LastResult          string `json:"lastResult,omitempty"`
}

// Status derives the study-facing view.
func (m *WordMastery) Status() WordStatus {
	return WordStatus{
		AnsweredCorrectOnce: m.AnsweredCorrectOnce,
		MasteryStreak:       m.MasteryStreak,
		Mastered:            m.Mastered,
		TotalFlips:          m.TotalFlips,
		LastResult:          m.LastResult,
	}
}
