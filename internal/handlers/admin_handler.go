package handlers

import (
	"fmt"
	"net/http"
	"time"

	"vocabville/internal/service"
	"vocabville/internal/worlds"
)

// AudioGenerator pre-generates cached MP3s for a set of terms.
type AudioGenerator interface {
	BatchGenerateAudio(terms []string) (map[string]string, error)
}

// AdminHandler serves progression export, audio pregeneration and the
// full reset.
type AdminHandler struct {
	backup *service.BackupService
	words  service.WordSource
	audio  AudioGenerator
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(backup *service.BackupService, words service.WordSource, audio AudioGenerator) *AdminHandler {
	return &AdminHandler{backup: backup, words: words, audio: audio}
}

// Export handles GET /api/admin/export, streaming a backup download.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("vocabville_backup_%s.json", time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := h.backup.ExportToWriter(w); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export progression", "", err)
	}
}

// GenerateAudio handles POST /api/admin/audio/{dimension}/{biome},
// pre-generating spelling audio for every word in the biome.
func (h *AdminHandler) GenerateAudio(w http.ResponseWriter, r *http.Request) {
	dimension := r.PathValue("dimension")
	biome := r.PathValue("biome")

	if !worlds.ValidScope(dimension, biome) {
		respondWithError(w, http.StatusNotFound, "Unknown dimension or biome", "", nil)
		return
	}

	cards, _ := h.words.Words(dimension, biome)
	terms := make([]string, 0, len(cards))
	for _, c := range cards {
		terms = append(terms, c.Term)
	}

	generated, err := h.audio.BatchGenerateAudio(terms)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to generate audio", "", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"generated": generated,
		"count":     len(generated),
	})
}

// Reset handles POST /api/admin/reset, wiping all progression.
func (h *AdminHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.backup.ClearAll(); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to reset progression", "", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
