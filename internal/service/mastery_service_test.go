package service

import (
	"testing"

	"vocabville/internal/models"
)

var forestScope = models.Scope{Dimension: "overworld", Biome: "forest"}

func TestBumpRetiresWord(t *testing.T) {
	store := newFakeMasteryStore()
	svc := NewMasteryService(store)

	// two facets at the threshold, third one short
	for i := 0; i < 3; i++ {
		if _, err := svc.Bump(forestScope, "lantern", models.FacetSpelling); err != nil {
			t.Fatalf("Bump failed: %v", err)
		}
		if _, err := svc.Bump(forestScope, "lantern", models.FacetSynonym); err != nil {
			t.Fatalf("Bump failed: %v", err)
		}
	}
	m, err := svc.Bump(forestScope, "lantern", models.FacetAntonym)
	if err != nil {
		t.Fatalf("Bump failed: %v", err)
	}
	if m.WordRetired() {
		t.Fatal("word retired with antonym counter at 1")
	}

	m, _ = svc.Bump(forestScope, "lantern", models.FacetAntonym)
	if m.WordRetired() {
		t.Fatal("word retired with antonym counter at 2")
	}

	m, _ = svc.Bump(forestScope, "lantern", models.FacetAntonym)
	if !m.Retired {
		t.Fatal("Retired flag not set when every counter reached 3")
	}

	// counters keep growing past retirement, flag stays set
	m, _ = svc.Bump(forestScope, "lantern", models.FacetSpelling)
	if !m.Retired {
		t.Error("Retired flag must be monotonic")
	}
	if m.SpellingCorrect != 4 {
		t.Errorf("spelling counter = %d, want 4", m.SpellingCorrect)
	}
}

func TestBumpPersistsEveryCall(t *testing.T) {
	store := newFakeMasteryStore()
	svc := NewMasteryService(store)

	if _, err := svc.Bump(forestScope, "ember", models.FacetSpelling); err != nil {
		t.Fatalf("Bump failed: %v", err)
	}

	saved, err := store.Get(forestScope, "ember")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if saved.SpellingCorrect != 1 {
		t.Errorf("stored spelling counter = %d, want 1", saved.SpellingCorrect)
	}
}

func TestAllRetired(t *testing.T) {
	store := newFakeMasteryStore()
	svc := NewMasteryService(store)

	done, err := svc.AllRetired(forestScope)
	if err != nil {
		t.Fatalf("AllRetired failed: %v", err)
	}
	if done {
		t.Error("empty scope must not count as complete")
	}

	retired := models.NewWordMastery(forestScope, "lantern")
	retired.Retired = true
	store.Save(retired)

	fresh := models.NewWordMastery(forestScope, "ember")
	fresh.SpellingCorrect = 2
	store.Save(fresh)

	if done, _ := svc.AllRetired(forestScope); done {
		t.Error("scope with an unretired word must not be complete")
	}

	fresh.SpellingCorrect = 3
	fresh.SynonymCorrect = 3
	fresh.AntonymCorrect = 3
	store.Save(fresh)

	if done, _ := svc.AllRetired(forestScope); !done {
		t.Error("scope with every word retired must be complete")
	}
}
