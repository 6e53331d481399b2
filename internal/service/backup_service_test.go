package service

import (
	"bytes"
	"strings"
	"testing"

	"vocabville/internal/models"
)

func newTestBackup() (*BackupService, *fakeMasteryStore, *fakeLedgerStore, *fakeStreakStore) {
	mastery := newFakeMasteryStore()
	ledger := &fakeLedgerStore{}
	streaks := &fakeStreakStore{}
	svc := NewBackupService(mastery, newFakeInventoryStore(), newFakeUnlockStore(), ledger, streaks)
	return svc, mastery, ledger, streaks
}

func TestBackupRoundTrip(t *testing.T) {
	src, mastery, ledger, streaks := newTestBackup()

	scope := models.Scope{Dimension: "overworld", Biome: "plains"}
	m := models.NewWordMastery(scope, "brook")
	m.SpellingCorrect = 3
	m.SynonymCorrect = 3
	m.AntonymCorrect = 3
	m.Retired = true
	mastery.Save(m)

	ledger.ledger.Lifetime = models.LifetimeCounts{Pickaxe: 12, Netherite: 1, PlayMinutes: 30}
	ledger.ledger.Current = models.TierCounts{Pickaxe: 2}
	streaks.streak = models.Streak{Count: 4}

	var buf bytes.Buffer
	if err := src.ExportToWriter(&buf); err != nil {
		t.Fatalf("ExportToWriter failed: %v", err)
	}

	dst, dstMastery, dstLedger, dstStreaks := newTestBackup()
	if err := dst.ImportFromReader(&buf, false); err != nil {
		t.Fatalf("ImportFromReader failed: %v", err)
	}

	got, _ := dstMastery.Get(scope, "brook")
	if !got.Retired || got.SpellingCorrect != 3 {
		t.Errorf("imported mastery = %+v", got)
	}
	if dstLedger.ledger.Lifetime.PlayMinutes != 30 || dstLedger.ledger.Current.Pickaxe != 2 {
		t.Errorf("imported ledger = %+v", dstLedger.ledger)
	}
	if dstStreaks.streak.Count != 4 {
		t.Errorf("imported streak = %+v", dstStreaks.streak)
	}
}

func TestImportLegacyLedger(t *testing.T) {
	doc := `{
		"version": "1",
		"mastery": [],
		"ledger": {"pickaxe": 7, "diamond": 3, "netherite": 1}
	}`

	svc, _, ledger, _ := newTestBackup()
	if err := svc.ImportFromReader(strings.NewReader(doc), false); err != nil {
		t.Fatalf("ImportFromReader failed: %v", err)
	}

	want := models.TierCounts{Pickaxe: 7, Diamond: 3, Netherite: 1}
	if ledger.ledger.Current != want {
		t.Errorf("Current = %+v, want %+v", ledger.ledger.Current, want)
	}
	if ledger.ledger.Lifetime != (models.LifetimeCounts{}) {
		t.Errorf("legacy import must leave lifetime zeroed, got %+v", ledger.ledger.Lifetime)
	}
}

func TestImportWithClear(t *testing.T) {
	svc, mastery, ledger, _ := newTestBackup()

	stale := models.NewWordMastery(models.Scope{Dimension: "overworld", Biome: "forest"}, "ember")
	stale.SpellingCorrect = 2
	mastery.Save(stale)
	ledger.ledger.Current.Pickaxe = 9

	doc := `{"version": "1", "mastery": [], "ledger": {"lifetime": {}, "current": {}}}`
	if err := svc.ImportFromReader(strings.NewReader(doc), true); err != nil {
		t.Fatalf("ImportFromReader failed: %v", err)
	}

	if len(mastery.records) != 0 {
		t.Errorf("mastery not cleared: %v", mastery.records)
	}
	if ledger.ledger.Current.Pickaxe != 0 {
		t.Errorf("ledger not cleared: %+v", ledger.ledger)
	}
}
