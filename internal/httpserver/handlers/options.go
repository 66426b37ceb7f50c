package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
)

// Options serves GET /api/options.
func Options(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Market.Options())
	}
}
