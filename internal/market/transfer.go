package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
)

// ExportFilename is the suggested name for exported files.
const ExportFilename = "listings-export.json"

var (
	// ErrMalformedImport means the import file is not valid JSON.
	ErrMalformedImport = errors.New("import file is not valid JSON")
	// ErrNotArray means the import file is JSON but not an array.
	ErrNotArray = errors.New("import file must contain a JSON array of listings")
)

// ImportResult summarizes an import.
type ImportResult struct {
	Imported int `json:"imported"`
	// Duplicates counts imported listings whose id was already present,
	// either on the board or earlier in the same file. They are kept.
	Duplicates int `json:"duplicates"`
	Total      int `json:"total"`
}

// Export writes the full sequence as an indented JSON array.
func (s *Service) Export(_ context.Context, w io.Writer) error {
	listings := s.index.Snapshot()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	s.logger.Info("listings exported", logger.Int("count", len(listings)))
	return nil
}

// Import reads a JSON array of listings from r, normalizes each record and
// prepends them, in file order, to the board.
func (s *Service) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read import file: %w", err)
	}

	records, err := decodeImport(data)
	if err != nil {
		s.logger.Warn("import rejected", logger.Error(err))
		return ImportResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.index.Snapshot()
	seen := make(map[string]bool, len(current)+len(records))
	for _, l := range current {
		seen[l.ID] = true
	}

	imported := make([]domain.Listing, 0, len(records))
	dups := 0
	for _, rec := range records {
		l := domain.Normalize(rec, s.newID)
		if seen[l.ID] {
			dups++
		}
		seen[l.ID] = true
		imported = append(imported, l)
	}

	next := make([]domain.Listing, 0, len(imported)+len(current))
	next = append(next, imported...)
	next = append(next, current...)

	if err := s.commit(ctx, next); err != nil {
		return ImportResult{}, err
	}

	if dups > 0 {
		s.logger.Warn("imported listings reuse existing ids",
			logger.Int("duplicates", dups))
	}
	s.logger.Info("listings imported",
		logger.Int("imported", len(imported)),
		logger.Int("total", len(next)))

	return ImportResult{Imported: len(imported), Duplicates: dups, Total: len(next)}, nil
}

// decodeImport keeps numbers as json.Number so large numeric ids survive
// exactly.
func decodeImport(data []byte) ([]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after the top-level value", ErrMalformedImport)
	}
	records, ok := payload.([]any)
	if !ok {
		return nil, ErrNotArray
	}
	return records, nil
}
