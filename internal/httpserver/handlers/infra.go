package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
)

type componentStatus struct {
	OK             bool   `json:"ok"`
	ListingsLoaded *int   `json:"listings_loaded,omitempty"`
	LastReload     string `json:"last_reload,omitempty"`
	LastChange     string `json:"last_change,omitempty"`
	Mode           string `json:"mode,omitempty"`
	Impact         string `json:"impact,omitempty"`
	Error          string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.Count()
		components := map[string]componentStatus{
			"index": {
				OK:             true,
				ListingsLoaded: &count,
				LastReload:     formatTime(d.MemoryIndex.LastReload()),
				LastChange:     formatTime(d.MemoryIndex.LastChange()),
			},
			"slot": checkSlot(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     determineStatus(components),
			Components: components,
		})
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}

func determineStatus(components map[string]componentStatus) string {
	// An unreachable slot means commands will fail to persist.
	if slot, ok := components["slot"]; ok && !slot.OK {
		return "degraded"
	}
	return "ok"
}

func checkSlot(ctx context.Context, d deps.Deps) componentStatus {
	if d.Slot == nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Backend,
			Impact: "changes-not-persisted",
			Error:  "slot not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Slot.Check(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Slot.Name(),
			Impact: "changes-not-persisted",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   d.Slot.Name(),
		Impact: "changes-persisted",
	}
}
