package handlers

import (
	"encoding/json"
	"net/http"

	"vocabville/internal/models"
	"vocabville/internal/service"
)

// StatsHandler serves the ledger, streak and inventory overview plus the
// currency operations.
type StatsHandler struct {
	economy   *service.EconomyService
	inventory service.InventoryStore
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(economy *service.EconomyService, inventory service.InventoryStore) *StatsHandler {
	return &StatsHandler{economy: economy, inventory: inventory}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ledger, streak, err := h.economy.Overview()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load stats", "", err)
		return
	}

	items, err := h.inventory.All()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load inventory", "", err)
		return
	}

	streakView := map[string]interface{}{"count": streak.Count}
	if !streak.LastAttempt.IsZero() {
		streakView["lastAttempt"] = streak.LastAttempt.Format("2006-01-02")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ledger":    ledger,
		"streak":    streakView,
		"inventory": items,
	})
}

type convertRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Convert handles POST /api/currency/convert
func (h *StatsHandler) Convert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	ledger, crafted, err := h.economy.Convert(models.Tier(req.From), models.Tier(req.To))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ledger":  ledger,
		"crafted": crafted,
	})
}

type redeemRequest struct {
	PIN string `json:"pin"`
}

// Redeem handles POST /api/currency/redeem
func (h *StatsHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body", "", err)
		return
	}

	ledger, minutes, err := h.economy.Redeem(r.Context(), req.PIN)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"ledger":  ledger,
		"minutes": minutes,
	})
}
