package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "votepulse/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondAppError maps a service error onto the wire contract. Unknown errors
// come back as an opaque 500 so internals never leak to callers.
func respondAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		respondError(w, appErr.StatusCode, appErr.Message)
		return
	}
	respondError(w, http.StatusInternalServerError, "Internal server error")
}
