package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wonny/fxsim/backend/internal/simulation"
)

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps core error taxonomy to HTTP status codes
// ErrScenarioNotFound → 404, ErrInvalidParameter → 400, 그 외 → 500
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulation.ErrScenarioNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, simulation.ErrInvalidParameter):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
