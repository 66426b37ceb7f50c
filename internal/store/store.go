// Package store persists the listing sequence to a single key-value slot.
//
// A Slot is the raw storage (a JSON file, a Redis key, or memory in tests).
// Store layers the listing encoding on top and implements the fail-soft load:
// a missing or unreadable slot never stops the board from starting, it falls
// back to the sample listings instead.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
)

var (
	// ErrEmpty is returned by Slot.Read when nothing has been written yet.
	ErrEmpty = errors.New("slot is empty")
	// ErrUnreadable is returned by Save while the slot's current contents are
	// unknown because the last read failed. Saving then would overwrite them.
	ErrUnreadable = errors.New("saved listings could not be read")
)

// Slot is one named, overwrite-only value in a key-value store.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	// Check reports whether the backing storage is reachable.
	Check(ctx context.Context) error
	// Name identifies the slot in logs, e.g. "file:/home/me/.marketboard/listings.json".
	Name() string
}

// Store loads and saves the whole listing sequence.
type Store struct {
	slot   Slot
	sample func() []domain.Listing
	logger logger.Logger

	// unreadable is set when a read failed for a reason other than an empty
	// slot or corrupt data, and cleared by the next read that gets an answer.
	unreadable atomic.Bool
}

// New returns a Store on top of slot. sample provides the listings used when
// the slot is empty or corrupt.
func New(slot Slot, sample func() []domain.Listing, log logger.Logger) *Store {
	return &Store{
		slot:   slot,
		sample: sample,
		logger: log.Named("store"),
	}
}

// Slot exposes the underlying slot for health checks.
func (s *Store) Slot() Slot { return s.slot }

// Load returns the persisted sequence, or the sample sequence when the slot
// is missing, unreadable or does not hold a JSON array of listings. After a
// read error Save is refused until a later read succeeds.
func (s *Store) Load(ctx context.Context) []domain.Listing {
	data, err := s.slot.Read(ctx)
	s.noteRead(err)
	if err != nil {
		if errors.Is(err, ErrEmpty) {
			s.logger.Info("no saved listings, using sample data",
				logger.String("slot", s.slot.Name()))
		} else {
			s.logger.Warn("failed to read saved listings, using sample data; changes will not be saved",
				logger.String("slot", s.slot.Name()),
				logger.Error(err))
		}
		return s.sample()
	}

	listings, err := Decode(data)
	if err != nil {
		s.logger.Warn("saved listings are corrupt, using sample data",
			logger.String("slot", s.slot.Name()),
			logger.Error(err))
		return s.sample()
	}

	s.logger.Debug("loaded listings",
		logger.String("slot", s.slot.Name()),
		logger.Int("count", len(listings)))
	return listings
}

// Fetch reads and decodes the slot without falling back to the sample.
// It returns ErrEmpty when nothing has been saved yet.
func (s *Store) Fetch(ctx context.Context) ([]domain.Listing, error) {
	data, err := s.slot.Read(ctx)
	s.noteRead(err)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Readable reports whether the last read got an answer from the slot.
func (s *Store) Readable() bool { return !s.unreadable.Load() }

func (s *Store) noteRead(err error) {
	s.unreadable.Store(err != nil && !errors.Is(err, ErrEmpty))
}

// Save overwrites the slot with the full sequence.
func (s *Store) Save(ctx context.Context, listings []domain.Listing) error {
	if s.unreadable.Load() {
		return fmt.Errorf("refusing to overwrite %s: %w", s.slot.Name(), ErrUnreadable)
	}
	data, err := Encode(listings)
	if err != nil {
		return err
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("failed to save listings to %s: %w", s.slot.Name(), err)
	}
	return nil
}

// Encode serializes the sequence as a compact JSON array. A nil sequence is
// written as [] so it reads back as an empty board rather than corrupt data.
func Encode(listings []domain.Listing) ([]byte, error) {
	if listings == nil {
		listings = []domain.Listing{}
	}
	data, err := json.Marshal(listings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal listings: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of listings. JSON null is rejected.
func Decode(data []byte) ([]domain.Listing, error) {
	var listings []domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listings: %w", err)
	}
	if listings == nil {
		return nil, errors.New("saved value is not an array")
	}
	return listings, nil
}
