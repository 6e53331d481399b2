package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"vocabville/internal/service"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondServiceError maps service sentinel errors to HTTP statuses;
// anything unrecognized is a 500.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownScope):
		respondWithError(w, http.StatusNotFound, "Unknown dimension or biome", "", nil)
	case errors.Is(err, service.ErrSessionNotFound):
		respondWithError(w, http.StatusNotFound, "Quest session not found", "", nil)
	case errors.Is(err, service.ErrSessionNotActive):
		respondWithError(w, http.StatusConflict, "Quest session is not accepting answers", "", nil)
	case errors.Is(err, service.ErrUnknownWord):
		respondWithError(w, http.StatusNotFound, "Word not in this biome", "", nil)
	case errors.Is(err, service.ErrBadConversion):
		respondWithError(w, http.StatusBadRequest, "No conversion between those tiers", "", nil)
	case errors.Is(err, service.ErrPINMismatch):
		respondWithError(w, http.StatusForbidden, "Parent PIN incorrect", "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, "Something went wrong", "Unhandled service error", err)
	}
}
