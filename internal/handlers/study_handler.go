package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"vocabville/internal/models"
	"vocabville/internal/service"
)

// StudyHandler serves the untimed study drill.
type StudyHandler struct {
	study *service.StudyService
}

// NewStudyHandler creates a new study handler
func NewStudyHandler(study *service.StudyService) *StudyHandler {
	return &StudyHandler{study: study}
}

// GetOverview handles GET /api/study/{dimension}/{biome}
func (h *StudyHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	dimension := r.PathValue("dimension")
	biome := r.PathValue("biome")

	ov, err := h.study.Overview(dimension, biome)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"cards":          newCardViews(ov.Cards),
		"pool":           newCardViews(ov.Pool),
		"status":         ov.Status,
		"completedOnce":  ov.CompletedOnce,
		"craftingTables": ov.CraftingTables,
		"placeholder":    ov.Placeholder,
		"unlockedBiome":  ov.UnlockedBiome,
		"events":         newEventViews(ov.Events),
	})
}

// Navigate handles GET /api/study/{dimension}/{biome}/nav, stepping
// through the study pool with wraparound. Query: index, delta.
func (h *StudyHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	dimension := r.PathValue("dimension")
	biome := r.PathValue("biome")

	index, err := strconv.Atoi(r.URL.Query().Get("index"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid index", "", err)
		return
	}
	delta, err := strconv.Atoi(r.URL.Query().Get("delta"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid delta", "", err)
		return
	}

	card, at, err := h.study.Navigate(dimension, biome, index, delta)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"card":  newCardViews([]models.WordCard{*card})[0],
		"index": at,
	})
}

type submitRequest struct {
	Term     string `json:"term"`
	Flipped  bool   `json:"flipped"`
	Synonym  string `json:"synonym"`
	Antonym  string `json:"antonym"`
	Spelling string `json:"spelling"`
}

// Submit handles POST /api/study/{dimension}/{biome}/submit
func (h *StudyHandler) Submit(w http.ResponseWriter, r *http.Request) {
	dimension := r.PathValue("dimension")
	biome := r.PathValue("biome")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}
	if req.Term == "" {
		respondWithError(w, http.StatusBadRequest, "Term is required", "", nil)
		return
	}

	res, err := h.study.Submit(dimension, biome, service.Submission{
		Term:     req.Term,
		Flipped:  req.Flipped,
		Synonym:  req.Synonym,
		Antonym:  req.Antonym,
		Spelling: req.Spelling,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"correct":       res.Correct,
		"wrongFacets":   res.WrongFacets,
		"revealTerm":    res.RevealTerm,
		"status":        res.Status,
		"rewarded":      res.Rewarded,
		"unlockedBiome": res.UnlockedBiome,
		"events":        newEventViews(res.Events),
		"message":       res.Message,
	})
}
