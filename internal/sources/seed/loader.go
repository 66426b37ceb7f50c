// Package seed provides the sample listings a fresh board starts with.
//
// The default set is embedded in the binary. A YAML file with the same
// layout can replace it (MARKET_SEED_FILE).
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
)

//go:embed sample.yaml
var defaultSample []byte

// Loader reads seed listings from a YAML file, or from the embedded sample
// when no file is configured.
type Loader struct {
	filePath string
}

// NewLoader creates a seed loader. An empty filePath selects the embedded sample.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and maps the seed listings.
func (l *Loader) Load() ([]domain.Listing, error) {
	data := defaultSample
	if l.filePath != "" {
		b, err := os.ReadFile(l.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = b
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return Map(file), nil
}

// Default returns the embedded sample listings.
func Default() []domain.Listing {
	listings, err := NewLoader("").Load()
	if err != nil {
		// The embedded file is part of the build.
		panic(err)
	}
	return listings
}

// Map converts seed entries to listings, filling defaults and ids.
func Map(file File) []domain.Listing {
	out := make([]domain.Listing, 0, len(file.Listings))
	for _, e := range file.Listings {
		out = append(out, domain.Normalize(map[string]any{
			"id":          e.ID,
			"title":       e.Title,
			"description": e.Description,
			"price":       e.Price,
			"currency":    e.Currency,
			"category":    e.Category,
			"location":    e.Location,
			"contact":     e.Contact,
		}, domain.NewID))
	}
	return out
}
