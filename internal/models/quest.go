package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestPhase is the lifecycle state of a quest session.
type QuestPhase string

const (
	PhasePrep    QuestPhase = "prep"
	PhasePlaying QuestPhase = "playing"
	PhaseWon     QuestPhase = "won"
	PhaseLost    QuestPhase = "lost"
)

// Terminal reports whether the phase is a final state.
func (p QuestPhase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Question is one quiz item: four options, one correct.
type Question struct {
	Facet        Facet
	Term         string
	Prompt       string
	Options      []string
	CorrectIndex int
	// Speakable is the text to read aloud for spelling questions.
	Speakable string
}

// QuestSession is an in-memory timed quiz run. It is never persisted;
// abandoning the session discards it.
type QuestSession struct {
	ID        uuid.UUID
	Dimension string
	Biome     string

	Questions []Question
	Index     int
	Score     int
	Phase     QuestPhase

	// Placeholder is set when the word content could not be loaded and
	// the built-in fallback list was used instead.
	Placeholder bool

	StartedAt  time.Time
	PrepEndsAt time.Time
	EndsAt     time.Time
}

// Current returns the question at the session cursor, or nil past the end.
func (s *QuestSession) Current() *Question {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}
