package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
)

type readyzResponse struct {
	Ready bool   `json:"ready"`
	Slot  string `json:"slot"`
	Error string `json:"error,omitempty"`
}

// Readyz reports whether the persistence slot is reachable.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := d.Slot.Check(ctx); err != nil {
			d.Logger.Warn("slot not ready", logger.String("slot", d.Slot.Name()), logger.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, readyzResponse{Slot: d.Slot.Name(), Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, readyzResponse{Ready: true, Slot: d.Slot.Name()})
	}
}
