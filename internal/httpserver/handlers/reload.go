package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
)

type reloadResponse struct {
	Triggered bool `json:"triggered"`
}

// Reload asks the slot reloader to re-read the listings now.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.ReloadTrigger == nil {
			writeError(w, http.StatusNotImplemented, "reload disabled")
			return
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual reload triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{Triggered: true})
		default:
			d.Logger.Warn("reload already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{Triggered: false})
		}
	}
}
