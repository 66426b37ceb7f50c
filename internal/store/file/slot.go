// Package file stores the listing slot as a JSON file on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MrSnakeDoc/marketboard/internal/store"
)

// Slot is a single file. Writes go to a temp file in the same directory and
// are renamed over the target, so readers never see a half-written value.
type Slot struct {
	path string
	mode os.FileMode
	mu   sync.Mutex
}

// New returns a Slot at path. The parent directory is created on first write.
func New(path string) *Slot {
	return &Slot{path: path, mode: 0o600}
}

// Path returns the file location.
func (s *Slot) Path() string { return s.path }

func (s *Slot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, store.ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Slot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return writeFile(s.path, data, s.mode)
}

// Check verifies the directory holding the slot is usable.
func (s *Slot) Check(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		// Created lazily on first write.
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func (s *Slot) Name() string { return "file:" + s.path }

// writeFile writes bytes via a temp file, then atomically replaces the target.
func writeFile(path string, b []byte, mode os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	// Best-effort cleanup if anything fails before rename.
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Compile-time assertion that Slot implements store.Slot.
var _ store.Slot = (*Slot)(nil)
