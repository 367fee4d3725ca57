package api

import (
	"encoding/json"
	"net/http"

	apperrors "campusbook/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps service errors onto HTTP statuses; errors without an
// embedded status use the fallback.
func writeError(w http.ResponseWriter, err error, fallback int) {
	status := apperrors.StatusOf(err, fallback)
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
