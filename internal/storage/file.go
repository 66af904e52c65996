package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the document as a single JSON file. Saves write to
// a temporary file in the same directory and rename it over the target
// so readers never observe a partial document.
type FileStore struct {
	path string
}

// NewFileStore returns a file-backed document store at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the document file. A missing file is not an error and
// yields an empty document.
func (s *FileStore) Load(ctx context.Context) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Document{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading document file: %w", err)
	}
	return decodeDocument(raw)
}

// Save overwrites the document file atomically.
func (s *FileStore) Save(ctx context.Context, doc *Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".polica-*")
	if err != nil {
		return fmt.Errorf("creating temp document: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp document: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing document file: %w", err)
	}
	return nil
}
