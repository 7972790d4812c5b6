package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
}

// writeJSON sends v with the given status. The status is already on the
// wire when encoding fails, so the failure is only logged.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("failed to encode response", "status", status, "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorBody{Message: msg})
}
