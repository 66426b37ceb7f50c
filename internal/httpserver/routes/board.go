package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marketboard/internal/httpserver/handlers"
)

func init() { Register(registerBoard, hostGuard) }

func registerBoard(r chi.Router, d deps.Deps) {
	r.Get("/api/options", handlers.Options(d))
	r.Get("/api/export", handlers.Export(d))

	w := r.With(writeLimit(d))
	w.Post("/api/import", handlers.Import(d))
	w.Post("/api/reload", handlers.Reload(d))
}
