package handlers

import (
	"net/http"

	"vocabville/internal/service"
	"vocabville/internal/worlds"
)

// WorldHandler serves the world map: dimensions, biome categories and
// unlock state.
type WorldHandler struct {
	unlocks service.UnlockStore
}

// NewWorldHandler creates a new world handler
func NewWorldHandler(unlocks service.UnlockStore) *WorldHandler {
	return &WorldHandler{unlocks: unlocks}
}

// GetWorlds handles GET /api/worlds
func (h *WorldHandler) GetWorlds(w http.ResponseWriter, r *http.Request) {
	stored, err := h.unlocks.All()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load unlock state", "", err)
		return
	}

	categories := make([]categoryView, 0, len(worlds.OverworldCategories))
	for _, cat := range worlds.OverworldCategories {
		cv := categoryView{Key: cat.Key, Name: cat.Name}
		for _, b := range cat.Biomes {
			cv.Biomes = append(cv.Biomes, biomeView{
				Slug:     b.Slug,
				Name:     b.Name,
				Note:     b.Note,
				Unlocked: biomeUnlocked(stored, worlds.StarterDimension, b.Slug),
			})
		}
		categories = append(categories, cv)
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"dimensions": worlds.Dimensions,
		"starter": map[string]string{
			"dimension": worlds.StarterDimension,
			"biome":     worlds.StarterBiome,
		},
		"overworld": categories,
	})
}

// biomeUnlocked consults the stored unlock map; the starter biome is
// always unlocked no matter what is stored.
func biomeUnlocked(stored map[string]map[string]bool, dimension, biome string) bool {
	if dimension == worlds.StarterDimension && biome == worlds.StarterBiome {
		return true
	}
	return stored[dimension][biome]
}
