// Package web holds the JSON response helpers and middleware shared by HTTP handlers.
package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RespondJSON(w http.ResponseWriter, logger *slog.Logger, status int, payload any) {
	// Handle nil payload
	if payload == nil {
		w.WriteHeader(status)
		return
	}

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding response to JSON", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string) {
	RespondJSON(w, logger, status, map[string]string{"error": message})
}

// ParseIntParam extracts a non-negative integer path parameter. On failure it writes
// a 400 response and returns false.
func ParseIntParam(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (int, bool) {
	raw := chi.URLParam(r, key)
	if raw == "" {
		raw = r.PathValue(key)
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("Invalid %s: %s", key, raw))
		return 0, false
	}
	return value, true
}
