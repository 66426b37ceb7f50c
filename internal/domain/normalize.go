package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Defaults is the table applied by Normalize to missing or unusable fields.
//
//	id          -> NewID()
//	title       -> DefaultTitle
//	description -> ""
//	price       -> 0
//	currency    -> DefaultCurrency
//	category    -> DefaultCategory
//	location    -> LocationLocal
//	contact     -> ""
var Defaults = Listing{
	Title:    DefaultTitle,
	Currency: DefaultCurrency,
	Category: DefaultCategory,
	Location: LocationLocal,
}

// Normalize turns one decoded import record into a Listing.
//
// The record is whatever json.Unmarshal produced for an array element, so any
// field may be absent or of the wrong type. Strings that are empty count as
// missing. Numeric ids are kept in their decimal form.
func Normalize(record any, newID func() string) Listing {
	fields, _ := record.(map[string]any)

	l := Listing{
		ID:          idField(fields["id"]),
		Title:       stringField(fields["title"], Defaults.Title),
		Description: stringField(fields["description"], Defaults.Description),
		Price:       CoercePrice(fields["price"]),
		Currency:    stringField(fields["currency"], Defaults.Currency),
		Category:    stringField(fields["category"], Defaults.Category),
		Location:    stringField(fields["location"], Defaults.Location),
		Contact:     stringField(fields["contact"], Defaults.Contact),
	}
	if l.ID == "" {
		l.ID = newID()
	}
	return l
}

// CoercePrice converts a decoded JSON value into a price.
// Anything that is not a finite, non-negative number becomes 0.
func CoercePrice(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func stringField(v any, def string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

func idField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}
