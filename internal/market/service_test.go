package market

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MrSnakeDoc/marketboard/internal/domain"
	"github.com/MrSnakeDoc/marketboard/internal/index"
	"github.com/MrSnakeDoc/marketboard/internal/logger"
	"github.com/MrSnakeDoc/marketboard/internal/store"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// newTestService returns a loaded Service over a memory slot holding initial.
func newTestService(t *testing.T, initial []domain.Listing) (*Service, *store.MemorySlot) {
	t.Helper()
	slot := store.NewMemorySlot()
	data, err := store.Encode(initial)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := slot.Write(context.Background(), data); err != nil {
		t.Fatalf("seed slot: %v", err)
	}

	st := store.New(slot, func() []domain.Listing { return nil }, logger.NewNop())
	svc := New(st, index.NewMemoryIndex(), logger.NewNop(), seqIDs())
	svc.Load(context.Background())
	return svc, slot
}

func persisted(t *testing.T, slot *store.MemorySlot) []domain.Listing {
	t.Helper()
	raw, err := slot.Read(context.Background())
	if err != nil {
		t.Fatalf("read slot: %v", err)
	}
	listings, err := store.Decode(raw)
	if err != nil {
		t.Fatalf("decode slot: %v", err)
	}
	return listings
}

func twoListings() []domain.Listing {
	return []domain.Listing{
		{ID: "1", Title: "Car", Price: 220000, Currency: "KZT", Category: "Vehicles", Location: "Almaty"},
		{ID: "2", Title: "Bike", Price: 45000, Currency: "KZT", Category: "Other", Location: domain.LocationLocal},
	}
}

func TestLoadUsesSampleWhenEmpty(t *testing.T) {
	sample := []domain.Listing{{ID: "s", Title: "Sample"}}
	st := store.New(store.NewMemorySlot(), func() []domain.Listing { return sample }, logger.NewNop())
	svc := New(st, index.NewMemoryIndex(), logger.NewNop(), nil)

	if n := svc.Load(context.Background()); n != 1 {
		t.Fatalf("Load() = %d, want 1", n)
	}
	if got := svc.Listings(); got[0].ID != "s" {
		t.Errorf("Listings() = %+v, want sample", got)
	}
}

func TestCreatePrepends(t *testing.T) {
	svc, slot := newTestService(t, twoListings())

	l, err := svc.Create(context.Background(), domain.Draft{
		Title:    "Laptop",
		Price:    "300000",
		Category: "Electronics",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if l.ID != "id-1" || l.Currency != domain.DefaultCurrency || l.Location != domain.LocationLocal {
		t.Errorf("Create() = %+v", l)
	}

	got := svc.Listings()
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0] != l {
		t.Errorf("first listing = %+v, want %+v", got[0], l)
	}
	if saved := persisted(t, slot); len(saved) != 3 || saved[0].ID != l.ID {
		t.Errorf("persisted = %+v, want new listing first", saved)
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	tests := []struct {
		name    string
		draft   domain.Draft
		wantErr error
	}{
		{"empty title", domain.Draft{Price: "10"}, domain.ErrTitleRequired},
		{"empty price", domain.Draft{Title: "Chair"}, domain.ErrPriceRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, slot := newTestService(t, twoListings())

			_, err := svc.Create(context.Background(), tt.draft)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if n := len(svc.Listings()); n != 2 {
				t.Errorf("len = %d, want unchanged 2", n)
			}
			if n := len(persisted(t, slot)); n != 2 {
				t.Errorf("persisted len = %d, want unchanged 2", n)
			}
		})
	}
}

func TestCreateWriteFailureLeavesBoardUnchanged(t *testing.T) {
	svc, slot := newTestService(t, twoListings())
	slot.WriteErr = errors.New("disk full")

	if _, err := svc.Create(context.Background(), domain.Draft{Title: "Lamp", Price: "5"}); err == nil {
		t.Fatal("Create() should fail when the slot can't be written")
	}
	if n := len(svc.Listings()); n != 2 {
		t.Errorf("len = %d, want unchanged 2", n)
	}
}

func TestDelete(t *testing.T) {
	svc, slot := newTestService(t, twoListings())
	var asked domain.Listing

	deleted, err := svc.Delete(context.Background(), "1", func(l domain.Listing) bool {
		asked = l
		return true
	})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if !deleted {
		t.Fatal("Delete() = false, want true")
	}
	if asked.ID != "1" || asked.Title != "Car" {
		t.Errorf("confirm got %+v, want listing 1", asked)
	}
	if _, ok := svc.Get("1"); ok {
		t.Error("listing 1 still present after delete")
	}
	if saved := persisted(t, slot); len(saved) != 1 || saved[0].ID != "2" {
		t.Errorf("persisted = %+v, want only listing 2", saved)
	}
}

func TestDeleteDeclined(t *testing.T) {
	svc, _ := newTestService(t, twoListings())

	deleted, err := svc.Delete(context.Background(), "1", func(domain.Listing) bool { return false })
	if err != nil || deleted {
		t.Fatalf("Delete() = (%v, %v), want (false, nil)", deleted, err)
	}
	if _, ok := svc.Get("1"); !ok {
		t.Error("declined delete removed the listing")
	}

	// A nil confirmation never deletes.
	if deleted, _ := svc.Delete(context.Background(), "1", nil); deleted {
		t.Error("Delete() with nil confirm should not delete")
	}
}

func TestDeleteUnknownID(t *testing.T) {
	svc, _ := newTestService(t, twoListings())
	called := false

	deleted, err := svc.Delete(context.Background(), "missing", func(domain.Listing) bool {
		called = true
		return true
	})
	if err != nil || deleted {
		t.Fatalf("Delete() = (%v, %v), want (false, nil)", deleted, err)
	}
	if called {
		t.Error("confirm should not be asked for an unknown id")
	}
	if n := len(svc.Listings()); n != 2 {
		t.Errorf("len = %d, want 2", n)
	}
}

func TestDeleteRemovesDuplicates(t *testing.T) {
	initial := append(twoListings(), domain.Listing{ID: "1", Title: "Imported car"})
	svc, _ := newTestService(t, initial)

	if _, err := svc.Delete(context.Background(), "1", func(domain.Listing) bool { return true }); err != nil {
		t.Fatal(err)
	}
	if _, ok := svc.Get("1"); ok {
		t.Error("duplicate id still present")
	}
	if n := len(svc.Listings()); n != 1 {
		t.Errorf("len = %d, want 1", n)
	}
}

func TestBrowse(t *testing.T) {
	svc, _ := newTestService(t, twoListings())

	page := svc.Browse(domain.Query{Sort: domain.SortPriceAsc})
	if page.Count != 2 || page.Total != 2 || page.Listings[0].ID != "2" {
		t.Errorf("Browse(price_asc) = %+v", page)
	}
	if page.Message != "" {
		t.Errorf("Message = %q, want empty", page.Message)
	}

	page = svc.Browse(domain.Query{Text: "laptop"})
	if page.Count != 0 || page.Message != domain.EmptyMessage {
		t.Errorf("Browse(laptop) = %+v, want empty with message", page)
	}
}

func TestOptions(t *testing.T) {
	svc, _ := newTestService(t, twoListings())

	opts := svc.Options()
	if len(opts.Categories) != 3 || opts.Categories[0] != domain.FilterAll {
		t.Errorf("Categories = %v", opts.Categories)
	}
	if len(opts.Locations) != 3 || opts.Locations[1] != domain.LocationLocal || opts.Locations[2] != "Almaty" {
		t.Errorf("Locations = %v", opts.Locations)
	}
}

func TestSync(t *testing.T) {
	svc, slot := newTestService(t, twoListings())

	changed, err := svc.Sync(context.Background())
	if err != nil || changed {
		t.Fatalf("Sync() unchanged slot = %v, %v; want false, nil", changed, err)
	}

	// another process removes listing 1
	data, _ := store.Encode(twoListings()[1:])
	if err := slot.Write(context.Background(), data); err != nil {
		t.Fatalf("write: %v", err)
	}
	changed, err = svc.Sync(context.Background())
	if err != nil || !changed {
		t.Fatalf("Sync() = %v, %v; want true, nil", changed, err)
	}
	if got := svc.Listings(); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Listings() = %+v", got)
	}
}

func TestSyncKeepsBoardOnCorruptSlot(t *testing.T) {
	svc, slot := newTestService(t, twoListings())
	if err := slot.Write(context.Background(), []byte("{oops")); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := svc.Sync(context.Background()); err == nil {
		t.Fatal("Sync() should report the decode failure")
	}
	if got := svc.Listings(); len(got) != 2 {
		t.Errorf("Listings() = %d, want 2 (unchanged)", len(got))
	}
}

func TestSyncIgnoresEmptySlot(t *testing.T) {
	slot := store.NewMemorySlot()
	st := store.New(slot, twoListings, logger.NewNop())
	svc := New(st, index.NewMemoryIndex(), logger.NewNop(), seqIDs())
	svc.Load(context.Background())

	changed, err := svc.Sync(context.Background())
	if err != nil || changed {
		t.Fatalf("Sync() = %v, %v; want false, nil", changed, err)
	}
	if len(svc.Listings()) != 2 {
		t.Errorf("sample listings dropped by Sync")
	}
}

type flakySlot struct {
	*store.MemorySlot
	down bool
}

func (f *flakySlot) Read(ctx context.Context) ([]byte, error) {
	if f.down {
		return nil, errors.New("i/o timeout")
	}
	return f.MemorySlot.Read(ctx)
}

func TestCreateAfterReadErrorKeepsSavedListings(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{MemorySlot: store.NewMemorySlot()}
	data, _ := store.Encode([]domain.Listing{{ID: "real-1", Title: "Real"}})
	_ = slot.Write(ctx, data)

	st := store.New(slot, twoListings, logger.NewNop())
	svc := New(st, index.NewMemoryIndex(), logger.NewNop(), seqIDs())
	slot.down = true
	svc.Load(ctx)
	slot.down = false

	_, err := svc.Create(ctx, domain.Draft{Title: "new", Price: "10"})
	if !errors.Is(err, store.ErrUnreadable) {
		t.Fatalf("Create() error = %v, want ErrUnreadable", err)
	}
	if got := persisted(t, slot.MemorySlot); len(got) != 1 || got[0].ID != "real-1" {
		t.Fatalf("saved listings overwritten: %+v", got)
	}

	// once the slot answers again, Sync restores the real board and commands work
	if changed, err := svc.Sync(ctx); err != nil || !changed {
		t.Fatalf("Sync() = %v, %v", changed, err)
	}
	if _, err := svc.Create(ctx, domain.Draft{Title: "new", Price: "10"}); err != nil {
		t.Fatalf("Create() after Sync = %v", err)
	}
	if got := persisted(t, slot.MemorySlot); len(got) != 2 || got[1].ID != "real-1" {
		t.Errorf("slot = %+v, want new listing before real-1", got)
	}
}
