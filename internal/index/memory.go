package index

import (
	"sync"
	"time"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
)

// MemoryIndex holds the in-memory listing sequence.
// Order matters: index 0 is the newest listing.
type MemoryIndex struct {
	mu         sync.RWMutex
	listings   []domain.Listing
	lastReload time.Time // last full replacement (startup load)
	lastChange time.Time // last committed mutation
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Replace swaps the whole sequence, e.g. after loading from the store.
func (idx *MemoryIndex) Replace(listings []domain.Listing) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.listings = domain.Clone(listings)
	idx.lastReload = time.Now()
}

// Commit installs a sequence produced by a command.
func (idx *MemoryIndex) Commit(listings []domain.Listing) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.listings = domain.Clone(listings)
	idx.lastChange = time.Now()
}

// Snapshot returns a copy of the sequence.
func (idx *MemoryIndex) Snapshot() []domain.Listing {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return domain.Clone(idx.listings)
}

// Get returns the first listing with id.
func (idx *MemoryIndex) Get(id string) (domain.Listing, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	i := domain.IndexOf(idx.listings, id)
	if i < 0 {
		return domain.Listing{}, false
	}
	return idx.listings[i], true
}

// Count returns the number of listings.
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.listings)
}

// LastReload returns when the sequence was last loaded from the store.
func (idx *MemoryIndex) LastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}

// LastChange returns when a command last changed the sequence.
func (idx *MemoryIndex) LastChange() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastChange
}
