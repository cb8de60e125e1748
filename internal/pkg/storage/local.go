package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// LocalStorage serves files from a directory on the local file system.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a LocalStorage rooted at basePath.
// The directory is created if it does not exist yet.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// Open opens a file below the base directory. Paths escaping the base
// directory are reported as not found.
func (s *LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	clean := filepath.Clean("/" + path)
	if strings.Contains(path, "..") {
		return nil, ErrNotFound
	}

	file, err := os.Open(filepath.Join(s.basePath, clean))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}
