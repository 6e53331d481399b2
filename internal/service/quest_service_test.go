package service

import (
	"errors"
	"testing"
	"time"

	"vocabville/internal/models"

	"github.com/google/uuid"
)

func newTestQuest(t *testing.T, cards []models.WordCard, mastery *fakeMasteryStore) (*QuestService, *fakeClock, *fakeLedgerStore) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}
	economy, ledger, _ := newTestEconomy(clock)
	svc := NewQuestService(
		NewMasteryService(mastery),
		economy,
		staticWords{cards: cards},
		&countingSpeaker{},
		clock,
		QuestConfig{PrepSeconds: 5, DurationSeconds: 180, QuestionCount: 10},
	)
	return svc, clock, ledger
}

func answerCorrectly(t *testing.T, svc *QuestService, sess *models.QuestSession) *AnswerOutcome {
	t.Helper()

	current, err := svc.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	q := current.Current()
	if q == nil {
		t.Fatal("no current question")
	}
	outcome, err := svc.Answer(sess.ID, q.CorrectIndex)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if !outcome.Correct {
		t.Fatalf("correct option %d graded wrong", q.CorrectIndex)
	}
	return outcome
}

func TestStartUnknownScope(t *testing.T) {
	svc, _, _ := newTestQuest(t, testCards(), newFakeMasteryStore())

	if _, err := svc.Start("overworld", "crystal-caves"); err != ErrUnknownScope {
		t.Errorf("error = %v, want ErrUnknownScope", err)
	}
	if _, err := svc.Start("nether", "plains"); err != ErrUnknownScope {
		t.Errorf("error = %v, want ErrUnknownScope", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	svc, clock, _ := newTestQuest(t, testCards(), newFakeMasteryStore())

	sess, err := svc.Start("overworld", "plains")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if sess.Phase != models.PhasePrep {
		t.Fatalf("new session phase = %s, want prep", sess.Phase)
	}
	if len(sess.Questions) != 10 {
		t.Fatalf("question count = %d, want 10", len(sess.Questions))
	}

	// answers are rejected during prep
	if _, err := svc.Answer(sess.ID, 0); err != ErrSessionNotActive {
		t.Fatalf("prep answer error = %v, want ErrSessionNotActive", err)
	}

	clock.Advance(5 * time.Second)
	got, err := svc.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Phase != models.PhasePlaying {
		t.Fatalf("phase after prep = %s, want playing", got.Phase)
	}

	// deadline passes mid-run
	clock.Advance(181 * time.Second)
	got, _ = svc.Get(sess.ID)
	if got.Phase != models.PhaseLost {
		t.Fatalf("phase after deadline = %s, want lost", got.Phase)
	}
	if _, err := svc.Answer(sess.ID, 0); err != ErrSessionNotActive {
		t.Errorf("terminal answer error = %v, want ErrSessionNotActive", err)
	}
}

func TestWrongAnswerLosesImmediately(t *testing.T) {
	store := newFakeMasteryStore()
	svc, clock, _ := newTestQuest(t, testCards(), store)

	sess, _ := svc.Start("overworld", "plains")
	clock.Advance(5 * time.Second)

	current, _ := svc.Get(sess.ID)
	q := current.Current()
	wrong := (q.CorrectIndex + 1) % len(q.Options)

	outcome, err := svc.Answer(sess.ID, wrong)
	if err != nil {
		t.Fatalf("Answer failed: %v", err)
	}
	if outcome.Correct {
		t.Fatal("wrong option graded correct")
	}
	if outcome.Session.Phase != models.PhaseLost {
		t.Fatalf("phase = %s, want lost", outcome.Session.Phase)
	}
	if outcome.CorrectOption != q.Options[q.CorrectIndex] {
		t.Errorf("CorrectOption = %q, want %q", outcome.CorrectOption, q.Options[q.CorrectIndex])
	}

	// the miss never touched mastery
	for _, m := range store.records {
		if m.SpellingCorrect+m.SynonymCorrect+m.AntonymCorrect > 0 {
			t.Errorf("mastery recorded on a lost quest: %+v", m)
		}
	}
}

func TestWinningRun(t *testing.T) {
	store := newFakeMasteryStore()
	svc, clock, ledger := newTestQuest(t, testCards(), store)

	sess, _ := svc.Start("overworld", "plains")
	clock.Advance(5 * time.Second)

	var last *AnswerOutcome
	for i := 0; i < 10; i++ {
		last = answerCorrectly(t, svc, sess)
	}

	if last.Session.Phase != models.PhaseWon {
		t.Fatalf("phase = %s, want won", last.Session.Phase)
	}
	if last.Session.Score != 10 {
		t.Errorf("score = %d, want 10", last.Session.Score)
	}
	if ledger.ledger.Current.Netherite != 1 {
		t.Errorf("netherite = %d, want exactly 1", ledger.ledger.Current.Netherite)
	}
	if len(last.Events) == 0 {
		t.Error("winning outcome should carry reward events")
	}

	// correct answers were persisted as they happened
	total := 0
	for _, m := range store.records {
		total += m.SpellingCorrect + m.SynonymCorrect + m.AntonymCorrect
	}
	if total != 10 {
		t.Errorf("persisted facet bumps = %d, want 10", total)
	}

	// the terminal session rejects further answers, with no double award
	if _, err := svc.Answer(sess.ID, 0); err != ErrSessionNotActive {
		t.Errorf("post-win answer error = %v, want ErrSessionNotActive", err)
	}
	if ledger.ledger.Current.Netherite != 1 {
		t.Errorf("netherite after replay attempt = %d, want 1", ledger.ledger.Current.Netherite)
	}
}

func TestFinalAnswerAfterDeadlineLoses(t *testing.T) {
	svc, clock, ledger := newTestQuest(t, testCards(), newFakeMasteryStore())

	sess, _ := svc.Start("overworld", "plains")
	clock.Advance(5 * time.Second)

	for i := 0; i < 9; i++ {
		answerCorrectly(t, svc, sess)
	}

	// land exactly on the deadline for the last question
	clock.Advance(180 * time.Second)
	if _, err := svc.Answer(sess.ID, 0); err != ErrSessionNotActive {
		t.Fatalf("expired answer error = %v, want ErrSessionNotActive", err)
	}
	if ledger.ledger.Current.Netherite != 0 {
		t.Error("no award on an expired run")
	}
}

func TestRewardFailureLeavesSessionRetryable(t *testing.T) {
	svc, clock, ledger := newTestQuest(t, testCards(), newFakeMasteryStore())

	sess, _ := svc.Start("overworld", "plains")
	clock.Advance(5 * time.Second)

	for i := 0; i < 9; i++ {
		answerCorrectly(t, svc, sess)
	}

	// ledger write fails on the winning answer
	ledger.failNextSave = errors.New("disk full")
	current, err := svc.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	q := current.Current()
	if _, err := svc.Answer(sess.ID, q.CorrectIndex); err == nil {
		t.Fatal("winning answer must surface the settlement error")
	}

	// the session stays playing on the same question, so a retry can win
	current, err = svc.Get(sess.ID)
	if err != nil {
		t.Fatalf("Get after failed settlement: %v", err)
	}
	if current.Phase != models.PhasePlaying {
		t.Fatalf("phase after failed settlement = %s, want playing", current.Phase)
	}
	if current.Index != 9 {
		t.Fatalf("index after failed settlement = %d, want 9", current.Index)
	}

	out := answerCorrectly(t, svc, sess)
	if out.Session.Phase != models.PhaseWon {
		t.Fatalf("retry phase = %s, want won", out.Session.Phase)
	}
	if ledger.ledger.Current.Netherite != 1 {
		t.Errorf("netherite after retry = %d, want 1", ledger.ledger.Current.Netherite)
	}
}

func TestQuestionPoolExclusions(t *testing.T) {
	store := newFakeMasteryStore()
	scope := models.Scope{Dimension: "overworld", Biome: "plains"}

	// meadow fully retired: the whole quest must draw from brook
	retired := models.NewWordMastery(scope, "meadow")
	retired.Retired = true
	store.Save(retired)

	// brook's spelling facet retired at 5 correct
	brook := models.NewWordMastery(scope, "brook")
	brook.SpellingCorrect = 5
	store.Save(brook)

	svc, _, _ := newTestQuest(t, testCards(), store)
	sess, err := svc.Start("overworld", "plains")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for i, q := range sess.Questions {
		if q.Term != "brook" {
			t.Errorf("question %d drew retired word %q", i, q.Term)
		}
		if q.Facet == models.FacetSpelling {
			t.Errorf("question %d drew retired facet spelling", i)
		}
	}
}

func TestEmptyPoolFallsBackToSpelling(t *testing.T) {
	store := newFakeMasteryStore()
	scope := models.Scope{Dimension: "overworld", Biome: "plains"}
	for _, term := range []string{"brook", "meadow"} {
		m := models.NewWordMastery(scope, term)
		m.Retired = true
		m.SpellingCorrect = 5
		m.SynonymCorrect = 5
		m.AntonymCorrect = 5
		store.Save(m)
	}

	svc, _, _ := newTestQuest(t, testCards(), store)
	sess, err := svc.Start("overworld", "plains")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if len(sess.Questions) == 0 {
		t.Fatal("a quest must always have questions")
	}
	for _, q := range sess.Questions {
		if q.Facet != models.FacetSpelling {
			t.Errorf("fallback question facet = %s, want spelling", q.Facet)
		}
	}
}

func TestSpellingOptionsContainTerm(t *testing.T) {
	svc, _, _ := newTestQuest(t, testCards(), newFakeMasteryStore())
	sess, _ := svc.Start("overworld", "plains")

	for _, q := range sess.Questions {
		if len(q.Options) != 4 {
			t.Errorf("question for %q has %d options, want 4", q.Term, len(q.Options))
		}
		if q.Facet == models.FacetSpelling && q.Options[q.CorrectIndex] != q.Term {
			t.Errorf("correct option %q does not match term %q", q.Options[q.CorrectIndex], q.Term)
		}
	}
}

func TestAbandonAndSweep(t *testing.T) {
	svc, clock, _ := newTestQuest(t, testCards(), newFakeMasteryStore())

	sess, _ := svc.Start("overworld", "plains")
	svc.Abandon(sess.ID)
	if _, err := svc.Get(sess.ID); err != ErrSessionNotFound {
		t.Errorf("abandoned session error = %v, want ErrSessionNotFound", err)
	}

	sess, _ = svc.Start("overworld", "plains")
	clock.Advance(2 * time.Hour)
	if removed := svc.SweepExpired(time.Hour); removed != 1 {
		t.Errorf("SweepExpired removed %d, want 1", removed)
	}
	if _, err := svc.Get(sess.ID); err != ErrSessionNotFound {
		t.Errorf("swept session error = %v, want ErrSessionNotFound", err)
	}

	if _, err := svc.Get(uuid.New()); err != ErrSessionNotFound {
		t.Errorf("unknown session error = %v, want ErrSessionNotFound", err)
	}
}
