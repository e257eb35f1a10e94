package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// gcsStorage implements Storage interface backed by a GCS bucket
type gcsStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a new gcsStorage instance. When credentialsFile is
// empty the client falls back to application default credentials.
func NewGCSStorage(ctx context.Context, bucket, credentialsFile string) (*gcsStorage, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &gcsStorage{
		client: client,
		bucket: bucket,
	}, nil
}

// objectPath generates the object name based on id and mediaType
// It converts underscores in mediaType to path separators
func (s *gcsStorage) objectPath(id, mediaType string) string {
	typePath := strings.ReplaceAll(mediaType, "_", "/")
	return typePath + "/" + id
}

// Create creates a new object and returns a WriteCloser
func (s *gcsStorage) Create(ctx context.Context, id, mediaType string) (io.WriteCloser, error) {
	object := s.client.Bucket(s.bucket).Object(s.objectPath(id, mediaType))
	return object.NewWriter(ctx), nil
}

// Open opens an object for reading and returns a ReadCloser
func (s *gcsStorage) Open(ctx context.Context, id, mediaType string) (io.ReadCloser, error) {
	object := s.client.Bucket(s.bucket).Object(s.objectPath(id, mediaType))
	reader, err := object.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}
	return reader, nil
}

// Delete removes an object
func (s *gcsStorage) Delete(ctx context.Context, id, mediaType string) error {
	object := s.client.Bucket(s.bucket).Object(s.objectPath(id, mediaType))
	if err := object.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Close releases the underlying GCS client
func (s *gcsStorage) Close() error {
	return s.client.Close()
}
