package market

import "github.com/MrSnakeDoc/marketboard/internal/domain"

// Page is one browse result.
type Page struct {
	Listings []domain.Listing `json:"listings"`
	Count    int              `json:"count"`
	Total    int              `json:"total"`
	// Message is set when nothing matched.
	Message string `json:"message,omitempty"`
}

// Options are the choices offered by the category and location filters.
type Options struct {
	Categories          []string          `json:"categories"`
	Locations           []string          `json:"locations"`
	SuggestedCategories []string          `json:"suggested_categories"`
	SortModes           []domain.SortMode `json:"sort_modes"`
}

// Browse applies q to the current sequence.
func (s *Service) Browse(q domain.Query) Page {
	all := s.index.Snapshot()
	items := domain.View(all, q)

	p := Page{
		Listings: items,
		Count:    len(items),
		Total:    len(all),
	}
	if len(items) == 0 {
		p.Message = domain.EmptyMessage
	}
	return p
}

// Options derives the filter choices from the current sequence.
func (s *Service) Options() Options {
	all := s.index.Snapshot()
	return Options{
		Categories:          domain.CategoryOptions(all),
		Locations:           domain.LocationOptions(all),
		SuggestedCategories: append([]string(nil), domain.SuggestedCategories...),
		SortModes:           []domain.SortMode{domain.SortNewest, domain.SortPriceAsc, domain.SortPriceDesc},
	}
}
