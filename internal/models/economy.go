package models

import (
	"encoding/json"
	"time"
)

// Tier is one of the three ranked reward currencies.
type Tier string

const (
	TierPickaxe   Tier = "pickaxe"
	TierDiamond   Tier = "diamond"
	TierNetherite Tier = "netherite"
)

// Fixed conversion economy: 5 pickaxes craft a diamond, 5 diamonds craft a
// netherite, 10 netherite redeem 30 minutes of play time.
const (
	PickaxesPerDiamond   = 5
	DiamondsPerNetherite = 5
	NetheritePerRedeem   = 10
	MinutesPerRedeem     = 30
)

// TierCounts holds a spendable balance per currency tier.
type TierCounts struct {
	Pickaxe   int `json:"pickaxe"`
	Diamond   int `json:"diamond"`
	Netherite int `json:"netherite"`
}

// Get returns the count for a tier.
func (c *TierCounts) Get(t Tier) int {
	switch t {
	case TierPickaxe:
		return c.Pickaxe
	case TierDiamond:
		return c.Diamond
	case TierNetherite:
		return c.Netherite
	}
	return 0
}

// Add adds n to a tier's count.
func (c *TierCounts) Add(t Tier, n int) {
	switch t {
	case TierPickaxe:
		c.Pickaxe += n
	case TierDiamond:
		c.Diamond += n
	case TierNetherite:
		c.Netherite += n
	}
}

// LifetimeCounts tracks strictly additive totals, including redeemed play
// minutes. Lifetime values are never decremented.
type LifetimeCounts struct {
	Pickaxe     int `json:"pickaxe"`
	Diamond     int `json:"diamond"`
	Netherite   int `json:"netherite"`
	PlayMinutes int `json:"playMinutes"`
}

// Add adds n to a tier's lifetime total.
func (c *LifetimeCounts) Add(t Tier, n int) {
	switch t {
	case TierPickaxe:
		c.Pickaxe += n
	case TierDiamond:
		c.Diamond += n
	case TierNetherite:
		c.Netherite += n
	}
}

// Ledger is the global currency state: additive lifetime totals plus the
// current spendable balances. Redeemed play minutes live only in Lifetime;
// they are considered spent once granted.
type Ledger struct {
	Lifetime LifetimeCounts `json:"lifetime"`
	Current  TierCounts     `json:"current"`
}

// ledgerJSON mirrors Ledger for plain decoding.
type ledgerJSON struct {
	Lifetime *LifetimeCounts `json:"lifetime"`
	Current  *TierCounts     `json:"current"`

	// Legacy flat schema carried only spendable balances.
	Pickaxe   *int `json:"pickaxe"`
	Diamond   *int `json:"diamond"`
	Netherite *int `json:"netherite"`
}

// UnmarshalJSON accepts both the current {lifetime, current} shape and the
// legacy flat {pickaxe, diamond, netherite} shape, mapping the latter into
// Current with zeroed lifetime totals.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var raw ledgerJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*l = Ledger{}
	if raw.Lifetime == nil && raw.Current == nil &&
		(raw.Pickaxe != nil || raw.Diamond != nil || raw.Netherite != nil) {
		if raw.Pickaxe != nil {
			l.Current.Pickaxe = *raw.Pickaxe
		}
		if raw.Diamond != nil {
			l.Current.Diamond = *raw.Diamond
		}
		if raw.Netherite != nil {
			l.Current.Netherite = *raw.Netherite
		}
		return nil
	}

	if raw.Lifetime != nil {
		l.Lifetime = *raw.Lifetime
	}
	if raw.Current != nil {
		l.Current = *raw.Current
	}
	return nil
}

// Streak is the global daily quest-attempt streak.
type Streak struct {
	// LastAttempt is the calendar date of the most recent attempt,
	// truncated to midnight UTC. Zero means no attempt recorded yet.
	LastAttempt time.Time `json:"lastAttempt"`
	Count       int       `json:"count"`
}

// StreakCycleLength is the attempt count that completes a streak cycle and
// earns a diamond.
const StreakCycleLength = 7
