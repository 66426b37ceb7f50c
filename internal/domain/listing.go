package domain

// Listing is a single classified ad.
//
// Listings live in one ordered sequence. Newer listings are prepended, so the
// position in the sequence is the recency order; there is no timestamp field.
type Listing struct {
	// ID is generated on creation (or on import when missing) and never changes.
	ID string `json:"id"`

	// Title is required when a listing is created by hand.
	Title string `json:"title"`

	// Description is free text and may be empty.
	Description string `json:"description"`

	// Price is a non-negative amount expressed in Currency.
	Price float64 `json:"price"`

	// Currency is always DefaultCurrency.
	Currency string `json:"currency"`

	// Category comes from SuggestedCategories or from imported data.
	Category string `json:"category"`

	// Location is free-form; LocationLocal marks the default area.
	Location string `json:"location"`

	// Contact is free text, usually a phone number.
	Contact string `json:"contact"`
}

const (
	// DefaultCurrency is the only currency the board knows about.
	DefaultCurrency = "KZT"

	// DefaultCategory is used when a listing has no category.
	DefaultCategory = "Other"

	// LocationLocal is the sentinel location meaning "local/default area".
	LocationLocal = "Local area"

	// DefaultTitle replaces a missing title on import.
	DefaultTitle = "Untitled listing"

	// FilterAll disables the category or location filter.
	FilterAll = "All"
)

// SuggestedCategories is offered when creating a listing. Imported data may
// carry any other value.
var SuggestedCategories = []string{
	"Electronics",
	"Vehicles",
	"Home & Garden",
	"Clothing",
	"Services",
	DefaultCategory,
}

// Clone returns a copy of the sequence so callers can't alias internal state.
func Clone(listings []Listing) []Listing {
	out := make([]Listing, len(listings))
	copy(out, listings)
	return out
}

// IndexOf returns the position of the first listing with id, or -1.
func IndexOf(listings []Listing, id string) int {
	for i := range listings {
		if listings[i].ID == id {
			return i
		}
	}
	return -1
}
