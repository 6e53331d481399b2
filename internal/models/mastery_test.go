package models

import "testing"

func TestWordRetired(t *testing.T) {
	tests := []struct {
		name    string
		mastery WordMastery
		want    bool
	}{
		{
			name:    "fresh word is not retired",
			mastery: WordMastery{},
			want:    false,
		},
		{
			name:    "all counters at threshold",
			mastery: WordMastery{SpellingCorrect: 3, SynonymCorrect: 3, AntonymCorrect: 3},
			want:    true,
		},
		{
			name:    "one counter below threshold",
			mastery: WordMastery{SpellingCorrect: 3, SynonymCorrect: 3, AntonymCorrect: 2},
			want:    false,
		},
		{
			name:    "counters past threshold",
			mastery: WordMastery{SpellingCorrect: 5, SynonymCorrect: 5, AntonymCorrect: 5},
			want:    true,
		},
		{
			name:    "flag set with low counters",
			mastery: WordMastery{Retired: true, SpellingCorrect: 1},
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.mastery.WordRetired(); got != tt.want {
				t.Errorf("WordRetired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFacetRetired(t *testing.T) {
	m := WordMastery{SpellingCorrect: 5, SynonymCorrect: 4}

	if !m.FacetRetired(FacetSpelling) {
		t.Error("spelling should be retired at 5 correct")
	}
	if m.FacetRetired(FacetSynonym) {
		t.Error("synonym should not be retired at 4 correct")
	}
	if m.FacetRetired(FacetAntonym) {
		t.Error("antonym should not be retired at zero")
	}
}

func TestBumpFacet(t *testing.T) {
	m := NewWordMastery(Scope{Dimension: "overworld", Biome: "plains"}, "brook")

	m.BumpFacet(FacetSpelling)
	m.BumpFacet(FacetSpelling)
	m.BumpFacet(FacetAntonym)

	if got := m.FacetCount(FacetSpelling); got != 2 {
		t.Errorf("spelling count = %d, want 2", got)
	}
	if got := m.FacetCount(FacetSynonym); got != 0 {
		t.Errorf("synonym count = %d, want 0", got)
	}
	if got := m.FacetCount(FacetAntonym); got != 1 {
		t.Errorf("antonym count = %d, want 1", got)
	}
}

func TestProgressReflectsRetirement(t *testing.T) {
	m := WordMastery{SpellingCorrect: 3, SynonymCorrect: 3, AntonymCorrect: 3}

	p := m.Progress()
	if !p.Retired {
		t.Error("progress view should report the word as retired")
	}
	if p.Spelling != 3 || p.Synonym != 3 || p.Antonym != 3 {
		t.Errorf("progress counters = %+v, want all 3", p)
	}
}
