package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"vocabville/internal/models"
	"vocabville/internal/worlds"

	"github.com/google/uuid"
)

// QuestConfig sets the timing and size of a quest run.
type QuestConfig struct {
	PrepSeconds     int
	DurationSeconds int
	QuestionCount   int
}

func (c QuestConfig) withDefaults() QuestConfig {
	if c.PrepSeconds <= 0 {
		c.PrepSeconds = 5
	}
	if c.DurationSeconds <= 0 {
		c.DurationSeconds = 180
	}
	if c.QuestionCount <= 0 {
		c.QuestionCount = 10
	}
	return c
}

// AnswerOutcome reports the result of grading one quest answer.
type AnswerOutcome struct {
	Correct       bool
	CorrectOption string
	Session       models.QuestSession
	Events        []Event
}

// QuestService runs timed quiz sessions. A session lives only in memory:
// a short prep countdown, then a hard deadline during which every question
// must be answered correctly. One wrong answer loses the quest
// immediately; answering all questions before the deadline wins it.
type QuestService struct {
	mastery *MasteryService
	economy *EconomyService
	words   WordSource
	speaker Speaker
	clock   Clock
	cfg     QuestConfig

	mu       sync.Mutex
	rng      *rand.Rand
	sessions map[uuid.UUID]*models.QuestSession
}

// NewQuestService creates a new quest service
func NewQuestService(mastery *MasteryService, economy *EconomyService, words WordSource, speaker Speaker, clock Clock, cfg QuestConfig) *QuestService {
	return &QuestService{
		mastery:  mastery,
		economy:  economy,
		words:    words,
		speaker:  speaker,
		clock:    clock,
		cfg:      cfg.withDefaults(),
		rng:      rand.New(rand.NewSource(clock.Now().UnixNano())),
		sessions: make(map[uuid.UUID]*models.QuestSession),
	}
}

// Start builds a new quest session for the given scope. Retired words and
// retired facets are excluded from the question draw; if nothing is
// eligible the full word list is used so a quest can always run.
func (s *QuestService) Start(dimension, biome string) (*models.QuestSession, error) {
	if !worlds.ValidScope(dimension, biome) {
		return nil, ErrUnknownScope
	}
	scope := models.Scope{Dimension: dimension, Biome: biome}

	cards, placeholder := s.words.Words(dimension, biome)
	snapshot, err := s.mastery.Snapshot(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load mastery for %s: %w", scope, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.buildQuestions(cards, snapshot)
	now := s.clock.Now()
	prep := time.Duration(s.cfg.PrepSeconds) * time.Second
	play := time.Duration(s.cfg.DurationSeconds) * time.Second

	sess := &models.QuestSession{
		ID:          uuid.New(),
		Dimension:   dimension,
		Biome:       biome,
		Questions:   questions,
		Phase:       models.PhasePrep,
		Placeholder: placeholder,
		StartedAt:   now,
		PrepEndsAt:  now.Add(prep),
		EndsAt:      now.Add(prep + play),
	}
	s.sessions[sess.ID] = sess

	for _, q := range questions {
		if q.Facet == models.FacetSpelling {
			s.speaker.Speak(q.Speakable)
		}
	}

	snap := *sess
	return &snap, nil
}

// Get returns the session after advancing its phase against the clock:
// prep rolls into playing when the countdown ends, and a playing session
// whose deadline has passed is lost.
func (s *QuestService) Get(id uuid.UUID) (*models.QuestSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.resolve(sess, s.clock.Now())

	snap := *sess
	return &snap, nil
}

// Answer grades the option picked for the current question. A wrong
// answer loses the quest on the spot. A correct answer records mastery
// progress immediately; a correct answer to the final question before the
// deadline wins the quest and settles its rewards exactly once.
func (s *QuestService) Answer(id uuid.UUID, optionIndex int) (*AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}

	now := s.clock.Now()
	s.resolve(sess, now)
	if sess.Phase != models.PhasePlaying {
		return nil, ErrSessionNotActive
	}

	q := sess.Current()
	if q == nil {
		return nil, ErrSessionNotActive
	}

	outcome := &AnswerOutcome{CorrectOption: q.Options[q.CorrectIndex]}

	if optionIndex != q.CorrectIndex {
		sess.Phase = models.PhaseLost
		outcome.Session = *sess
		return outcome, nil
	}

	outcome.Correct = true

	scope := models.Scope{Dimension: sess.Dimension, Biome: sess.Biome}
	if _, err := s.mastery.Bump(scope, q.Term, q.Facet); err != nil {
		return nil, fmt.Errorf("failed to record progress for %q: %w", q.Term, err)
	}

	final := sess.Index+1 >= len(sess.Questions)
	if final && now.Before(sess.EndsAt) {
		// Rewards settle before the phase commits; a settlement error
		// leaves the session playing so the answer can be retried.
		events, err := s.economy.QuestWon()
		if err != nil {
			return nil, fmt.Errorf("failed to settle quest reward: %w", err)
		}
		sess.Phase = models.PhaseWon
		outcome.Events = events
	} else if final {
		sess.Phase = models.PhaseLost
	} else {
		sess.Index++
	}
	sess.Score++

	outcome.Session = *sess
	return outcome, nil
}

// Abandon discards a session.
func (s *QuestService) Abandon(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// SweepExpired drops sessions whose deadline passed more than maxAge ago.
// Called periodically from the server's cleanup loop.
func (s *QuestService) SweepExpired(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.clock.Now().Add(-maxAge)
	removed := 0
	for id, sess := range s.sessions {
		if sess.EndsAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *QuestService) resolve(sess *models.QuestSession, now time.Time) {
	if sess.Phase == models.PhasePrep && !now.Before(sess.PrepEndsAt) {
		sess.Phase = models.PhasePlaying
	}
	if sess.Phase == models.PhasePlaying && !now.Before(sess.EndsAt) {
		sess.Phase = models.PhaseLost
	}
}

// buildQuestions draws the quiz items. Words already retired, and facets
// already retired on a word, are skipped; drawing is with replacement so
// a small biome still fills a full quest. If no word is eligible at all,
// spelling questions cycle over the whole list as a last resort.
func (s *QuestService) buildQuestions(cards []models.WordCard, snapshot map[string]*models.WordMastery) []models.Question {
	eligible := make([]models.WordCard, 0, len(cards))
	for _, w := range cards {
		m := snapshot[w.Term]
		if m != nil && m.WordRetired() {
			continue
		}
		if len(eligibleFacets(w, m)) > 0 {
			eligible = append(eligible, w)
		}
	}

	source := eligible
	if len(source) == 0 {
		source = cards
	}
	if len(source) == 0 {
		return nil
	}

	count := s.cfg.QuestionCount
	questions := make([]models.Question, 0, count)
	for attempts := 0; len(questions) < count && attempts < count*20; attempts++ {
		w := source[s.rng.Intn(len(source))]
		facets := eligibleFacets(w, snapshot[w.Term])
		if len(facets) == 0 {
			continue
		}
		q := s.buildQuestion(w, facets[s.rng.Intn(len(facets))])
		if q != nil {
			questions = append(questions, *q)
		}
	}

	if len(questions) == 0 {
		limit := count
		if len(cards) < limit {
			limit = len(cards)
		}
		for i := 0; i < limit; i++ {
			questions = append(questions, *s.buildSpellingQuestion(cards[i%len(cards)]))
		}
	}
	return questions
}

// eligibleFacets lists the facets a word can still be quizzed on: spelling
// always qualifies until retired, synonym and antonym only when the card
// carries options for them.
func eligibleFacets(w models.WordCard, m *models.WordMastery) []models.Facet {
	var facets []models.Facet
	if m == nil || !m.FacetRetired(models.FacetSpelling) {
		facets = append(facets, models.FacetSpelling)
	}
	if w.HasSynonyms() && (m == nil || !m.FacetRetired(models.FacetSynonym)) {
		facets = append(facets, models.FacetSynonym)
	}
	if w.HasAntonyms() && (m == nil || !m.FacetRetired(models.FacetAntonym)) {
		facets = append(facets, models.FacetAntonym)
	}
	return facets
}

func (s *QuestService) buildQuestion(w models.WordCard, facet models.Facet) *models.Question {
	switch facet {
	case models.FacetSynonym:
		if q := s.buildChoiceQuestion(w, models.FacetSynonym, w.Synonyms); q != nil {
			return q
		}
	case models.FacetAntonym:
		if q := s.buildChoiceQuestion(w, models.FacetAntonym, w.Antonyms); q != nil {
			return q
		}
	}
	return s.buildSpellingQuestion(w)
}

// buildSpellingQuestion pairs the word with generated misspellings. The
// correct index is tracked through the shuffle by position, since close
// distractors may differ from the word only by letter case.
func (s *QuestService) buildSpellingQuestion(w models.WordCard) *models.Question {
	opts := append([]string{w.Term}, SpellingDistractors(w.Term, 3)...)
	shuffled, correct := s.shuffleTracking(opts, 0)
	return &models.Question{
		Facet:        models.FacetSpelling,
		Term:         w.Term,
		Prompt:       "Spell the word you hear:",
		Options:      shuffled,
		CorrectIndex: correct,
		Speakable:    w.Term,
	}
}

func (s *QuestService) buildChoiceQuestion(w models.WordCard, facet models.Facet, mcq models.MCQ) *models.Question {
	correctAt := -1
	for i, opt := range mcq.Options {
		if opt == mcq.Correct {
			correctAt = i
			break
		}
	}
	if correctAt < 0 {
		return nil
	}

	relation := "synonym"
	if facet == models.FacetAntonym {
		relation = "antonym"
	}
	shuffled, correct := s.shuffleTracking(mcq.Options, correctAt)
	return &models.Question{
		Facet:        facet,
		Term:         w.Term,
		Prompt:       fmt.Sprintf("Choose a %s of %q:", relation, w.Term),
		Options:      shuffled,
		CorrectIndex: correct,
	}
}

// shuffleTracking returns a shuffled copy of opts along with the new
// position of the element that started at index track.
func (s *QuestService) shuffleTracking(opts []string, track int) ([]string, int) {
	perm := s.rng.Perm(len(opts))
	out := make([]string, len(opts))
	at := 0
	for i, p := range perm {
		out[i] = opts[p]
		if p == track {
			at = i
		}
	}
	return out, at
}
