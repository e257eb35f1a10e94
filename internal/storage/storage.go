// Package storage abstracts where committed media files live. Two drivers
// are provided: local filesystem and Google Cloud Storage.
package storage

import (
	"context"
	"io"
)

// Storage reads and writes media files addressed by id and media type
type Storage interface {
	// Create creates a new file and returns a WriteCloser
	Create(ctx context.Context, id, mediaType string) (io.WriteCloser, error)
	// Open opens a file for reading and returns a ReadCloser
	Open(ctx context.Context, id, mediaType string) (io.ReadCloser, error)
	// Delete removes a file
	Delete(ctx context.Context, id, mediaType string) error
}
