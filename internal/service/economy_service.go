package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"vocabville/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// RedemptionNotifier is told when play minutes are redeemed so a parent
// can be notified out of band.
type RedemptionNotifier interface {
	PlayTimeRedeemed(ctx context.Context, minutes, totalMinutes int) error
}

// EconomyService owns the currency ledger and the daily quest streak:
// awards, fixed-ratio conversions, play-time redemption and streak cycles.
type EconomyService struct {
	ledger  LedgerStore
	streaks StreakStore
	clock   Clock

	// pinHash is a bcrypt hash gating Redeem; empty disables the gate.
	pinHash  string
	notifier RedemptionNotifier
}

// NewEconomyService creates a new economy service
func NewEconomyService(ledger LedgerStore, streaks StreakStore, clock Clock, pinHash string, notifier RedemptionNotifier) *EconomyService {
	return &EconomyService{
		ledger:   ledger,
		streaks:  streaks,
		clock:    clock,
		pinHash:  pinHash,
		notifier: notifier,
	}
}

// Award adds n units of a tier to both lifetime and current counts.
func (s *EconomyService) Award(tier models.Tier, n int) (*models.Ledger, error) {
	l, err := s.ledger.Load()
	if err != nil {
		return nil, err
	}

	l.Lifetime.Add(tier, n)
	l.Current.Add(tier, n)

	if err := s.ledger.Save(l); err != nil {
		return nil, fmt.Errorf("failed to persist %s award: %w", tier, err)
	}
	return l, nil
}

// conversionRatio returns how many units of from craft one unit of to.
func conversionRatio(from, to models.Tier) (int, bool) {
	switch {
	case from == models.TierPickaxe && to == models.TierDiamond:
		return models.PickaxesPerDiamond, true
	case from == models.TierDiamond && to == models.TierNetherite:
		return models.DiamondsPerNetherite, true
	}
	return 0, false
}

// Convert crafts as many whole units of the target tier as the current
// balance allows. Insufficient balance is a no-op, not an error; the
// returned block count is zero in that case.
func (s *EconomyService) Convert(from, to models.Tier) (*models.Ledger, int, error) {
	ratio, ok := conversionRatio(from, to)
	if !ok {
		return nil, 0, ErrBadConversion
	}

	l, err := s.ledger.Load()
	if err != nil {
		return nil, 0, err
	}

	blocks := l.Current.Get(from) / ratio
	if blocks == 0 {
		return l, 0, nil
	}

	l.Current.Add(from, -blocks*ratio)
	l.Current.Add(to, blocks)

	if err := s.ledger.Save(l); err != nil {
		return nil, 0, fmt.Errorf("failed to persist conversion: %w", err)
	}
	return l, blocks, nil
}

// Redeem converts netherite into play minutes, 10 netherite per 30
// minutes. Minutes are credited to the lifetime ledger only; they count as
// spent the moment they are granted. When a parent PIN is configured the
// supplied pin must match.
func (s *EconomyService) Redeem(ctx context.Context, pin string) (*models.Ledger, int, error) {
	if s.pinHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.pinHash), []byte(pin)); err != nil {
			return nil, 0, ErrPINMismatch
		}
	}

	l, err := s.ledger.Load()
	if err != nil {
		return nil, 0, err
	}

	blocks := l.Current.Netherite / models.NetheritePerRedeem
	if blocks == 0 {
		return l, 0, nil
	}

	minutes := blocks * models.MinutesPerRedeem
	l.Current.Netherite -= blocks * models.NetheritePerRedeem
	l.Lifetime.PlayMinutes += minutes

	if err := s.ledger.Save(l); err != nil {
		return nil, 0, fmt.Errorf("failed to persist redemption: %w", err)
	}

	if s.notifier != nil {
		total := l.Lifetime.PlayMinutes
		go func() {
			notifyCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := s.notifier.PlayTimeRedeemed(notifyCtx, minutes, total); err != nil {
				log.Printf("Warning: redemption notification failed: %v", err)
			}
		}()
	}

	return l, minutes, nil
}

// RecordAttempt registers a quest attempt for the given instant and applies
// the daily streak rules: same calendar day is a no-op, the day after the
// previous attempt extends the streak, any larger gap starts over at one.
// Completing a seven-day cycle awards a diamond and resets the counter.
func (s *EconomyService) RecordAttempt(at time.Time) (*models.Streak, []Event, error) {
	today := dateOnly(at)

	st, err := s.streaks.Load()
	if err != nil {
		return nil, nil, err
	}

	if !st.LastAttempt.IsZero() && st.LastAttempt.Equal(today) {
		return st, nil, nil
	}

	if !st.LastAttempt.IsZero() && st.LastAttempt.AddDate(0, 0, 1).Equal(today) {
		st.Count++
	} else {
		st.Count = 1
	}
	st.LastAttempt = today

	var events []Event
	if st.Count >= models.StreakCycleLength {
		if _, err := s.Award(models.TierDiamond, 1); err != nil {
			return nil, nil, err
		}
		events = append(events, streakEvent("%d-day streak! You earned 1 Diamond!", models.StreakCycleLength))
		st.Count = 0
	}

	if err := s.streaks.Save(st); err != nil {
		return nil, nil, fmt.Errorf("failed to persist streak: %w", err)
	}
	return st, events, nil
}

// QuestWon settles a winning quest: one netherite plus a streak attempt
// for today. Called exactly once, at the terminal transition.
func (s *EconomyService) QuestWon() ([]Event, error) {
	if _, err := s.Award(models.TierNetherite, 1); err != nil {
		return nil, err
	}
	events := []Event{rewardEvent("You saved the villagers and earned 1 Netherite!")}

	_, streakEvents, err := s.RecordAttempt(s.clock.Now())
	if err != nil {
		return nil, err
	}
	return append(events, streakEvents...), nil
}

// Overview returns the current ledger and streak for the stats display.
func (s *EconomyService) Overview() (*models.Ledger, *models.Streak, error) {
	l, err := s.ledger.Load()
	if err != nil {
		return nil, nil, err
	}
	st, err := s.streaks.Load()
	if err != nil {
		return nil, nil, err
	}
	return l, st, nil
}

// dateOnly truncates an instant to its UTC calendar date.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
