package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vocabville/internal/models"
)

type stubUnlocks struct {
	unlocked map[string]map[string]bool
}

func (s stubUnlocks) IsUnlocked(dimension, biome string) (bool, error) {
	return s.unlocked[dimension][biome], nil
}

func (s stubUnlocks) Unlock(dimension, biome string) (bool, error) { return false, nil }

func (s stubUnlocks) All() (map[string]map[string]bool, error) { return s.unlocked, nil }

func (s stubUnlocks) Clear() error { return nil }

func TestGetWorlds(t *testing.T) {
	h := NewWorldHandler(stubUnlocks{unlocked: map[string]map[string]bool{
		"overworld": {"ice-plains": true},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/worlds", nil)
	rec := httptest.NewRecorder()
	h.GetWorlds(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Dimensions []string `json:"dimensions"`
		Starter    struct {
			Dimension string `json:"dimension"`
			Biome     string `json:"biome"`
		} `json:"starter"`
		Overworld []struct {
			Key    string      `json:"key"`
			Biomes []biomeView `json:"biomes"`
		} `json:"overworld"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if body.Starter.Dimension != "overworld" || body.Starter.Biome != "plains" {
		t.Errorf("starter = %+v", body.Starter)
	}
	if len(body.Overworld) == 0 {
		t.Fatal("no biome categories in response")
	}

	found := make(map[string]bool)
	for _, cat := range body.Overworld {
		for _, b := range cat.Biomes {
			found[b.Slug] = b.Unlocked
		}
	}
	if !found["plains"] {
		t.Error("starter biome must always be unlocked")
	}
	if !found["ice-plains"] {
		t.Error("stored unlock not reflected")
	}
	if found["dark-forest"] {
		t.Error("locked biome reported as unlocked")
	}
}

type stubAudio struct{}

func (stubAudio) AudioFilename(term string) string { return "word_" + term + ".mp3" }

func TestQuestionViewHidesAnswers(t *testing.T) {
	spelling := &models.Question{
		Facet:        models.FacetSpelling,
		Term:         "brook",
		Prompt:       "Spell the word you hear:",
		Options:      []string{"bruk", "brook", "brok", "broook"},
		CorrectIndex: 1,
		Speakable:    "brook",
	}

	v := newQuestionView(spelling, stubAudio{})
	if v.Term != "" {
		t.Error("spelling view must not expose the term")
	}
	if v.AudioURL != "/static/audio/word_brook.mp3" {
		t.Errorf("AudioURL = %q", v.AudioURL)
	}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var raw map[string]interface{}
	json.Unmarshal(data, &raw)
	if _, ok := raw["correctIndex"]; ok {
		t.Error("serialized question leaks the correct index")
	}

	synonym := &models.Question{
		Facet:        models.FacetSynonym,
		Term:         "brook",
		Prompt:       `Choose a synonym of "brook":`,
		Options:      []string{"stream", "mountain", "desert", "cloud"},
		CorrectIndex: 0,
	}
	v = newQuestionView(synonym, stubAudio{})
	if v.Term != "brook" {
		t.Error("choice view should carry the term")
	}
	if v.AudioURL != "" {
		t.Error("choice view should not carry audio")
	}
}
