package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

// Disk stores each key as a file under a root directory. Writes go through
// a temp file and rename so readers never observe a partial value.
type Disk struct {
	root string
}

// NewDisk creates a disk store rooted at dir, creating it if needed.
func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create root %s: %w", dir, err)
	}
	return &Disk{root: dir}, nil
}

// path maps a key to a file path. Keys are percent-escaped so separators
// and dots cannot escape the root.
func (d *Disk) path(key string) string {
	return filepath.Join(d.root, url.PathEscape(key)+".json")
}

// Read implements Store.
func (d *Disk) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(d.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %q: %w", key, err)
	}
	return data, nil
}

// Write implements Store.
func (d *Disk) Write(_ context.Context, key string, data []byte) error {
	path := d.path(key)
	tmp, err := os.CreateTemp(d.root, ".write-*")
	if err != nil {
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: write %q: %w", key, err)
	}
	return nil
}

// Delete implements Store.
func (d *Disk) Delete(_ context.Context, key string) error {
	err := os.Remove(d.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: delete %q: %w", key, err)
	}
	return nil
}
