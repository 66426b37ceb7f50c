package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
	"github.com/MrSnakeDoc/marketboard/internal/httpserver/deps"
)

// listingView is a listing plus its derived contact link.
type listingView struct {
	domain.Listing
	ContactLink string `json:"contact_link,omitempty"`
}

type pageResponse struct {
	Listings []listingView `json:"listings"`
	Count    int           `json:"count"`
	Total    int           `json:"total"`
	Message  string        `json:"message,omitempty"`
}

type deleteResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func toView(l domain.Listing) listingView {
	link, _ := domain.ContactLink(l.Contact)
	return listingView{Listing: l, ContactLink: link}
}

// ListListings serves GET /api/listings?q=&category=&location=&sort=.
func ListListings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := r.URL.Query()
		page := d.Market.Browse(domain.Query{
			Text:     params.Get("q"),
			Category: params.Get("category"),
			Location: params.Get("location"),
			Sort:     domain.ParseSortMode(params.Get("sort")),
		})

		views := make([]listingView, 0, len(page.Listings))
		for _, l := range page.Listings {
			views = append(views, toView(l))
		}
		writeJSON(w, http.StatusOK, pageResponse{
			Listings: views,
			Count:    page.Count,
			Total:    page.Total,
			Message:  page.Message,
		})
	}
}

// GetListing serves GET /api/listings/{id}.
func GetListing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		l, ok := d.Market.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}
		writeJSON(w, http.StatusOK, toView(l))
	}
}

// CreateListing serves POST /api/listings with a draft body.
func CreateListing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft domain.Draft
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
		if err := dec.Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid listing body: "+err.Error())
			return
		}

		l, err := d.Market.Create(r.Context(), draft)
		switch {
		case err == nil:
			writeJSON(w, http.StatusCreated, toView(l))
		case errors.Is(err, domain.ErrTitleRequired),
			errors.Is(err, domain.ErrPriceRequired),
			errors.Is(err, domain.ErrInvalidPrice):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeSaveError(w, d, "create listing", err)
		}
	}
}

// DeleteListing serves DELETE /api/listings/{id}?confirm=true. The confirm
// query parameter is the confirmation answer.
func DeleteListing(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, ok := d.Market.Get(id); !ok {
			writeError(w, http.StatusNotFound, "listing not found")
			return
		}

		confirmed := r.URL.Query().Get("confirm") == "true"
		deleted, err := d.Market.Delete(r.Context(), id, func(domain.Listing) bool { return confirmed })
		switch {
		case err != nil:
			writeSaveError(w, d, "delete listing "+id, err)
		case !deleted && !confirmed:
			writeError(w, http.StatusPreconditionRequired, "confirmation required")
		case !deleted:
			// removed by a concurrent request between Get and Delete
			writeError(w, http.StatusNotFound, "listing not found")
		default:
			writeJSON(w, http.StatusOK, deleteResponse{Deleted: true, ID: id})
		}
	}
}
