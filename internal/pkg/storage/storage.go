package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("file not found")

// Storage is a read-only view over the resort's media files
// (accommodation photos referenced by the catalog).
type Storage interface {
	// Open returns the content of the file at the relative path.
	// The caller must close the returned reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
