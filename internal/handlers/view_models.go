package handlers

import (
	"time"

	"vocabville/internal/models"
	"vocabville/internal/service"
)

// eventView is a player-facing notification.
type eventView struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newEventViews(events []service.Event) []eventView {
	out := make([]eventView, 0, len(events))
	for _, e := range events {
		out = append(out, eventView{Kind: string(e.Kind), Message: e.Message})
	}
	return out
}

// questionView is the client-safe shape of a quiz question. The correct
// index never leaves the server, and for spelling questions the term is
// withheld too, since the term is the answer.
type questionView struct {
	Facet    string   `json:"facet"`
	Term     string   `json:"term,omitempty"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	AudioURL string   `json:"audioUrl,omitempty"`
}

// AudioNamer resolves the served filename for a spoken term.
type AudioNamer interface {
	AudioFilename(term string) string
}

func newQuestionView(q *models.Question, audio AudioNamer) *questionView {
	if q == nil {
		return nil
	}
	v := &questionView{
		Facet:   string(q.Facet),
		Prompt:  q.Prompt,
		Options: q.Options,
	}
	if q.Facet == models.FacetSpelling {
		if audio != nil {
			v.AudioURL = "/static/audio/" + audio.AudioFilename(q.Speakable)
		}
	} else {
		v.Term = q.Term
	}
	return v
}

// questSessionView is the client-facing session state.
type questSessionView struct {
	ID             string        `json:"id"`
	Dimension      string        `json:"dimension"`
	Biome          string        `json:"biome"`
	Phase          string        `json:"phase"`
	QuestionNumber int           `json:"questionNumber"`
	TotalQuestions int           `json:"totalQuestions"`
	Score          int           `json:"score"`
	Placeholder    bool          `json:"placeholder,omitempty"`
	PrepEndsAt     time.Time     `json:"prepEndsAt"`
	EndsAt         time.Time     `json:"endsAt"`
	Question       *questionView `json:"question,omitempty"`
}

func newQuestSessionView(s *models.QuestSession, audio AudioNamer) questSessionView {
	v := questSessionView{
		ID:             s.ID.String(),
		Dimension:      s.Dimension,
		Biome:          s.Biome,
		Phase:          string(s.Phase),
		QuestionNumber: s.Index + 1,
		TotalQuestions: len(s.Questions),
		Score:          s.Score,
		Placeholder:    s.Placeholder,
		PrepEndsAt:     s.PrepEndsAt,
		EndsAt:         s.EndsAt,
	}
	if s.Phase == models.PhasePlaying {
		v.Question = newQuestionView(s.Current(), audio)
	}
	return v
}

// biomeView is one biome on the world map.
type biomeView struct {
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Note     string `json:"note,omitempty"`
	Unlocked bool   `json:"unlocked"`
}

// categoryView groups biomes for the map screen.
type categoryView struct {
	Key    string      `json:"key"`
	Name   string      `json:"name"`
	Biomes []biomeView `json:"biomes"`
}

// cardView is the study-facing shape of a word card.
type cardView struct {
	Term       string   `json:"term"`
	Definition string   `json:"definition,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty"`
	Antonyms   []string `json:"antonyms,omitempty"`
}

func newCardViews(cards []models.WordCard) []cardView {
	out := make([]cardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardView{
			Term:       c.Term,
			Definition: c.Definition,
			Synonyms:   c.Synonyms.Options,
			Antonyms:   c.Antonyms.Options,
		})
	}
	return out
}
