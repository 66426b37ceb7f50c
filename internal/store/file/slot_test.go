package file_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/MrSnakeDoc/marketboard/internal/store"
	"github.com/MrSnakeDoc/marketboard/internal/store/file"
)

func TestSlotReadMissing(t *testing.T) {
	slot := file.New(filepath.Join(t.TempDir(), "listings.json"))

	_, err := slot.Read(context.Background())
	if !errors.Is(err, store.ErrEmpty) {
		t.Errorf("Read() error = %v, want ErrEmpty", err)
	}
}

func TestSlotWriteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "listings.json")
	slot := file.New(path)
	ctx := context.Background()

	if err := slot.Write(ctx, []byte("[]")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := slot.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if string(got) != "[]" {
		t.Errorf("Read() = %q, want []", got)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSlotWriteOverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	slot := file.New(filepath.Join(dir, "listings.json"))
	ctx := context.Background()

	for _, v := range []string{`[{"id":"a"}]`, `[]`} {
		if err := slot.Write(ctx, []byte(v)); err != nil {
			t.Fatalf("Write(%s) error = %v", v, err)
		}
	}

	got, _ := slot.Read(ctx)
	if string(got) != "[]" {
		t.Errorf("Read() = %q, want last write", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the slot file", len(entries))
	}
}

func TestSlotCheck(t *testing.T) {
	dir := t.TempDir()
	if err := file.New(filepath.Join(dir, "missing", "x.json")).Check(context.Background()); err != nil {
		t.Errorf("Check() on missing dir error = %v, want nil", err)
	}

	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := file.New(filepath.Join(blocker, "x.json")).Check(context.Background()); err == nil {
		t.Error("Check() should fail when parent is a file")
	}
}
