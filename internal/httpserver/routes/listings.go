package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
	"github.com/MrSnakeDoc/marketboard/internal/httpserver/handlers"
)

func init() { Register(registerListings, hostGuard) }

func registerListings(r chi.Router, d deps.Deps) {
	r.Route("/api/listings", func(r chi.Router) {
		r.Get("/", handlers.ListListings(d))
		r.Get("/{id}", handlers.GetListing(d))

		w := r.With(writeLimit(d))
		w.Post("/", handlers.CreateListing(d))
		w.Delete("/{id}", handlers.DeleteListing(d))
	})
}
