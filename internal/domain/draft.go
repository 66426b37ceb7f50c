package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrPriceRequired = errors.New("price is required")
	ErrInvalidPrice  = errors.New("price is not a number")
)

// Draft is the create form. The zero value is the reset form.
type Draft struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Contact     string `json:"contact"`
}

// UnmarshalJSON accepts the price as a JSON string or a JSON number.
func (d *Draft) UnmarshalJSON(b []byte) error {
	type draftFields Draft
	var raw struct {
		draftFields
		Price json.RawMessage `json:"price"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = Draft(raw.draftFields)
	d.Price = ""

	p := bytes.TrimSpace(raw.Price)
	switch {
	case len(p) == 0, bytes.Equal(p, []byte("null")):
	case p[0] == '"':
		if err := json.Unmarshal(p, &d.Price); err != nil {
			return err
		}
	default:
		var n float64
		if err := json.Unmarshal(p, &n); err != nil {
			return fmt.Errorf("price must be a string or a number: %w", err)
		}
		d.Price = strconv.FormatFloat(n, 'f', -1, 64)
	}
	return nil
}

// FilterPrice keeps only digits and the decimal point, mirroring a numeric
// input field.
func FilterPrice(raw string) string {
	return strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, raw)
}

// Build validates the draft and returns a new listing with the given id.
func (d Draft) Build(id string) (Listing, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return Listing{}, ErrTitleRequired
	}
	raw := FilterPrice(d.Price)
	if raw == "" {
		return Listing{}, ErrPriceRequired
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Listing{}, fmt.Errorf("%w: %q", ErrInvalidPrice, d.Price)
	}

	category := strings.TrimSpace(d.Category)
	if category == "" {
		category = DefaultCategory
	}
	location := strings.TrimSpace(d.Location)
	if location == "" {
		location = LocationLocal
	}

	return Listing{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		Price:       price,
		Currency:    DefaultCurrency,
		Category:    category,
		Location:    location,
		Contact:     strings.TrimSpace(d.Contact),
	}, nil
}
