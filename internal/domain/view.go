package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortMode selects the ordering of a view.
type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

// EmptyMessage is shown when a view has no listings.
const EmptyMessage = "No listings match your search."

// Query holds the current browse selections.
type Query struct {
	Text     string
	Category string
	Location string
	Sort     SortMode
}

// ParseSortMode maps user input to a SortMode. Unknown values mean newest.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortPriceAsc:
		return SortPriceAsc
	case SortPriceDesc:
		return SortPriceDesc
	default:
		return SortNewest
	}
}

// View filters and sorts listings for display. The input is never modified.
func View(listings []Listing, q Query) []Listing {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if !matchesTag(l.Category, q.Category) || !matchesTag(l.Location, q.Location) {
			continue
		}
		if !matchesText(l, text) {
			continue
		}
		out = append(out, l)
	}

	switch q.Sort {
	case SortPriceAsc:
		slices.SortStableFunc(out, func(a, b Listing) int { return cmp.Compare(a.Price, b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(out, func(a, b Listing) int { return cmp.Compare(b.Price, a.Price) })
	}
	return out
}

func matchesTag(value, filter string) bool {
	if filter == "" || filter == FilterAll {
		return true
	}
	return value == filter
}

// matchesText expects an already lower-cased needle.
func matchesText(l Listing, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), needle) ||
		strings.Contains(strings.ToLower(l.Description), needle) ||
		strings.Contains(strings.ToLower(l.Category), needle)
}

// CategoryOptions returns FilterAll followed by the distinct categories in
// first-seen order.
func CategoryOptions(listings []Listing) []string {
	opts := []string{FilterAll}
	return appendDistinct(opts, listings, func(l Listing) string { return l.Category })
}

// LocationOptions returns FilterAll and LocationLocal followed by the other
// distinct locations. LocationLocal is listed even when no listing uses it.
func LocationOptions(listings []Listing) []string {
	opts := []string{FilterAll, LocationLocal}
	return appendDistinct(opts, listings, func(l Listing) string { return l.Location })
}

func appendDistinct(opts []string, listings []Listing, field func(Listing) string) []string {
	seen := make(map[string]bool, len(opts)+len(listings))
	for _, o := range opts {
		seen[o] = true
	}
	for _, l := range listings {
		v := field(l)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		opts = append(opts, v)
	}
	return opts
}
