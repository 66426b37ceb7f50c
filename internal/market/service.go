package market

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
	"github.com/MrSnakeDoc/marketboard/internal/index"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
	"github.com/MrSnakeDoc/marketboard/internal/store"
)

// Store is the persistence the board needs. *store.Store implements it.
type Store interface {
	Load(ctx context.Context) []domain.Listing
	Fetch(ctx context.Context) ([]domain.Listing, error)
	Save(ctx context.Context, listings []domain.Listing) error
}

// Confirm is asked before a listing is deleted. Returning false cancels.
type Confirm func(domain.Listing) bool

// Service is the listing board.
type Service struct {
	mu     sync.Mutex // serializes commands
	store  Store
	index  *index.MemoryIndex
	newID  func() string
	logger logger.Logger
}

// New creates a Service. A nil newID uses domain.NewID.
func New(st Store, idx *index.MemoryIndex, log logger.Logger, newID func() string) *Service {
	if newID == nil {
		newID = domain.NewID
	}
	return &Service{
		store:  st,
		index:  idx,
		newID:  newID,
		logger: log.Named("market"),
	}
}

// Load replaces the in-memory sequence with the stored one and returns the
// number of listings loaded.
func (s *Service) Load(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings := s.store.Load(ctx)
	s.index.Replace(listings)
	s.logger.Info("listings loaded", logger.Int("count", len(listings)))
	return len(listings)
}

// Sync picks up changes written to the slot by another process. It reports
// whether the in-memory sequence changed. An empty slot is left alone, and a
// read or decode failure keeps the current sequence.
func (s *Service) Sync(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	listings, err := s.store.Fetch(ctx)
	if errors.Is(err, store.ErrEmpty) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to sync listings: %w", err)
	}
	if slices.Equal(listings, s.index.Snapshot()) {
		return false, nil
	}

	s.index.Replace(listings)
	s.logger.Info("listings changed in storage, reloaded", logger.Int("count", len(listings)))
	return true, nil
}

// Listings returns the full sequence, newest first.
func (s *Service) Listings() []domain.Listing {
	return s.index.Snapshot()
}

// Get returns the listing with id.
func (s *Service) Get(id string) (domain.Listing, bool) {
	return s.index.Get(id)
}

// Create validates the draft, prepends the new listing and persists.
func (s *Service) Create(ctx context.Context, d domain.Draft) (domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := d.Build(s.newID())
	if err != nil {
		s.logger.Debug("rejected draft", logger.Error(err))
		return domain.Listing{}, err
	}

	current := s.index.Snapshot()
	next := make([]domain.Listing, 0, len(current)+1)
	next = append(next, l)
	next = append(next, current...)

	if err := s.commit(ctx, next); err != nil {
		return domain.Listing{}, err
	}

	s.logger.Info("listing created",
		logger.String("id", l.ID),
		logger.String("title", l.Title),
		logger.Float64("price", l.Price))
	return l, nil
}

// Delete removes the listing with id after confirm approves it. It reports
// whether anything was removed; an unknown id or a declined confirmation is
// a no-op. All records carrying the id are removed.
func (s *Service) Delete(ctx context.Context, id string, confirm Confirm) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.index.Snapshot()
	i := domain.IndexOf(current, id)
	if i < 0 {
		s.logger.Debug("delete of unknown listing", logger.String("id", id))
		return false, nil
	}
	if confirm == nil || !confirm(current[i]) {
		s.logger.Debug("delete cancelled", logger.String("id", id))
		return false, nil
	}

	next := make([]domain.Listing, 0, len(current)-1)
	for _, l := range current {
		if l.ID != id {
			next = append(next, l)
		}
	}

	if err := s.commit(ctx, next); err != nil {
		return false, err
	}

	s.logger.Info("listing deleted",
		logger.String("id", id),
		logger.Int("removed", len(current)-len(next)))
	return true, nil
}

// commit persists next and only then makes it visible.
func (s *Service) commit(ctx context.Context, next []domain.Listing) error {
	if err := s.store.Save(ctx, next); err != nil {
		s.logger.Error("failed to persist listings", logger.Error(err))
		return fmt.Errorf("persist listings: %w", err)
	}
	s.index.Commit(next)
	return nil
}
