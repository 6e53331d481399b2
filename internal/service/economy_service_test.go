package service

import (
	"context"
	"testing"
	"time"

	"vocabville/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name        string
		start       models.TierCounts
		from, to    models.Tier
		wantCrafted int
		wantCurrent models.TierCounts
	}{
		{
			name:        "twelve pickaxes craft two diamonds",
			start:       models.TierCounts{Pickaxe: 12},
			from:        models.TierPickaxe,
			to:          models.TierDiamond,
			wantCrafted: 2,
			wantCurrent: models.TierCounts{Pickaxe: 2, Diamond: 2},
		},
		{
			name:        "seven diamonds craft one netherite",
			start:       models.TierCounts{Diamond: 7},
			from:        models.TierDiamond,
			to:          models.TierNetherite,
			wantCrafted: 1,
			wantCurrent: models.TierCounts{Diamond: 2, Netherite: 1},
		},
		{
			name:        "below ratio is a no-op",
			start:       models.TierCounts{Pickaxe: 4},
			from:        models.TierPickaxe,
			to:          models.TierDiamond,
			wantCrafted: 0,
			wantCurrent: models.TierCounts{Pickaxe: 4},
		},
		{
			name:        "zero balance is a no-op",
			from:        models.TierPickaxe,
			to:          models.TierDiamond,
			wantCrafted: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, ledger, _ := newTestEconomy(&fakeClock{})
			ledger.ledger.Current = tt.start

			got, crafted, err := svc.Convert(tt.from, tt.to)
			if err != nil {
				t.Fatalf("Convert failed: %v", err)
			}
			if crafted != tt.wantCrafted {
				t.Errorf("crafted = %d, want %d", crafted, tt.wantCrafted)
			}
			if got.Current != tt.wantCurrent {
				t.Errorf("Current = %+v, want %+v", got.Current, tt.wantCurrent)
			}
			if got.Lifetime != (models.LifetimeCounts{}) {
				t.Errorf("conversion must not touch lifetime totals, got %+v", got.Lifetime)
			}
		})
	}
}

func TestConvertRejectsUnknownPairs(t *testing.T) {
	svc, _, _ := newTestEconomy(&fakeClock{})

	pairs := [][2]models.Tier{
		{models.TierDiamond, models.TierPickaxe},
		{models.TierNetherite, models.TierDiamond},
		{models.TierPickaxe, models.TierNetherite},
		{models.TierPickaxe, models.TierPickaxe},
	}
	for _, p := range pairs {
		if _, _, err := svc.Convert(p[0], p[1]); err != ErrBadConversion {
			t.Errorf("Convert(%s, %s) error = %v, want ErrBadConversion", p[0], p[1], err)
		}
	}
}

func TestAward(t *testing.T) {
	svc, _, _ := newTestEconomy(&fakeClock{})

	l, err := svc.Award(models.TierPickaxe, 3)
	if err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if l.Current.Pickaxe != 3 || l.Lifetime.Pickaxe != 3 {
		t.Errorf("award must credit both balances, got current=%d lifetime=%d",
			l.Current.Pickaxe, l.Lifetime.Pickaxe)
	}
}

func TestRedeem(t *testing.T) {
	svc, ledger, _ := newTestEconomy(&fakeClock{})
	ledger.ledger.Current.Netherite = 25

	got, minutes, err := svc.Redeem(context.Background(), "")
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	if minutes != 60 {
		t.Errorf("minutes = %d, want 60", minutes)
	}
	if got.Current.Netherite != 5 {
		t.Errorf("remaining netherite = %d, want 5", got.Current.Netherite)
	}
	if got.Lifetime.PlayMinutes != 60 {
		t.Errorf("lifetime play minutes = %d, want 60", got.Lifetime.PlayMinutes)
	}

	// below the ratio nothing moves
	ledger.ledger.Current.Netherite = 9
	got, minutes, err = svc.Redeem(context.Background(), "")
	if err != nil {
		t.Fatalf("Redeem failed: %v", err)
	}
	if minutes != 0 || got.Current.Netherite != 9 {
		t.Errorf("short balance must be a no-op, got minutes=%d netherite=%d", minutes, got.Current.Netherite)
	}
}

func TestRedeemPINGate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4321"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}

	ledger := &fakeLedgerStore{}
	ledger.ledger.Current.Netherite = 10
	svc := NewEconomyService(ledger, &fakeStreakStore{}, &fakeClock{}, string(hash), nil)

	if _, _, err := svc.Redeem(context.Background(), "9999"); err != ErrPINMismatch {
		t.Fatalf("wrong PIN error = %v, want ErrPINMismatch", err)
	}
	if ledger.ledger.Current.Netherite != 10 {
		t.Error("wrong PIN must not move any currency")
	}

	if _, minutes, err := svc.Redeem(context.Background(), "4321"); err != nil || minutes != 30 {
		t.Fatalf("correct PIN: minutes=%d err=%v, want 30 <nil>", minutes, err)
	}
}

func TestRecordAttempt(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 15, 4, 5, 0, time.UTC)
	}

	svc, _, _ := newTestEconomy(&fakeClock{})

	st, _, err := svc.RecordAttempt(day(1))
	if err != nil {
		t.Fatalf("RecordAttempt failed: %v", err)
	}
	if st.Count != 1 {
		t.Fatalf("first attempt count = %d, want 1", st.Count)
	}

	// same calendar day, different hour: idempotent
	st, events, _ := svc.RecordAttempt(day(1).Add(5 * time.Hour))
	if st.Count != 1 || len(events) != 0 {
		t.Errorf("same-day attempt must be a no-op, got count=%d events=%d", st.Count, len(events))
	}

	// next day extends
	st, _, _ = svc.RecordAttempt(day(2))
	if st.Count != 2 {
		t.Errorf("next-day count = %d, want 2", st.Count)
	}

	// a gap starts over
	st, _, _ = svc.RecordAttempt(day(5))
	if st.Count != 1 {
		t.Errorf("count after gap = %d, want 1", st.Count)
	}
}

func TestStreakCycleAwardsDiamond(t *testing.T) {
	svc, ledger, _ := newTestEconomy(&fakeClock{})

	var events []Event
	for d := 1; d <= 7; d++ {
		st, evs, err := svc.RecordAttempt(time.Date(2026, 8, d, 9, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("RecordAttempt failed on day %d: %v", d, err)
		}
		events = evs
		if d < 7 && st.Count != d {
			t.Fatalf("day %d count = %d", d, st.Count)
		}
		if d == 7 && st.Count != 0 {
			t.Fatalf("count after a full cycle = %d, want 0", st.Count)
		}
	}

	if len(events) != 1 || events[0].Kind != EventStreak {
		t.Fatalf("cycle completion events = %+v, want one streak event", events)
	}
	if ledger.ledger.Current.Diamond != 1 || ledger.ledger.Lifetime.Diamond != 1 {
		t.Errorf("diamond not awarded: %+v", ledger.ledger)
	}
}

func TestQuestWon(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)}
	svc, ledger, streaks := newTestEconomy(clock)

	events, err := svc.QuestWon()
	if err != nil {
		t.Fatalf("QuestWon failed: %v", err)
	}
	if ledger.ledger.Current.Netherite != 1 || ledger.ledger.Lifetime.Netherite != 1 {
		t.Errorf("netherite not awarded: %+v", ledger.ledger)
	}
	if streaks.streak.Count != 1 {
		t.Errorf("streak count = %d, want 1", streaks.streak.Count)
	}
	if len(events) == 0 || events[0].Kind != EventReward {
		t.Errorf("events = %+v, want a leading reward event", events)
	}
}
