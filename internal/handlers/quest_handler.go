package handlers

import (
	"encoding/json"
	"net/http"

	"vocabville/internal/service"

	"github.com/google/uuid"
)

// QuestHandler serves the timed quest game.
type QuestHandler struct {
	quests *service.QuestService
	audio  AudioNamer
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(quests *service.QuestService, audio AudioNamer) *QuestHandler {
	return &QuestHandler{quests: quests, audio: audio}
}

// Start handles POST /api/quest/{dimension}/{biome}/start
func (h *QuestHandler) Start(w http.ResponseWriter, r *http.Request) {
	dimension := r.PathValue("dimension")
	biome := r.PathValue("biome")

	sess, err := h.quests.Start(dimension, biome)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newQuestSessionView(sess, h.audio))
}

// Get handles GET /api/quest/{id}
func (h *QuestHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID", "", err)
		return
	}

	sess, err := h.quests.Get(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newQuestSessionView(sess, h.audio))
}

type answerRequest struct {
	OptionIndex int `json:"optionIndex"`
}

// Answer handles POST /api/quest/{id}/answer
func (h *QuestHandler) Answer(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID", "", err)
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	outcome, err := h.quests.Answer(id, req.OptionIndex)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"correct":       outcome.Correct,
		"correctOption": outcome.CorrectOption,
		"session":       newQuestSessionView(&outcome.Session, h.audio),
		"events":        newEventViews(outcome.Events),
	})
}

// Abandon handles DELETE /api/quest/{id}
func (h *QuestHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid session ID", "", err)
		return
	}

	h.quests.Abandon(id)
	w.WriteHeader(http.StatusNoContent)
}
