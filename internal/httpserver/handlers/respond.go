package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
	"github.com/MrSnakeDoc/marketboard/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeSaveError reports a command that could not persist. An unreadable
// slot is temporary, so it maps to 503.
func writeSaveError(w http.ResponseWriter, d deps.Deps, op string, err error) {
	d.Logger.Error(op+" failed", logger.Error(err))
	if errors.Is(err, store.ErrUnreadable) {
		w.Header().Set("Retry-After", "5")
		writeError(w, http.StatusServiceUnavailable, "saved listings are unreadable, try again later")
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to save listings")
}
