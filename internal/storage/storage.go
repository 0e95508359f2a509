// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup:
// S3Storage talks to AWS S3, MinioStorage to any S3-compatible provider,
// and MemoryStorage keeps objects in process for local runs and tests.
package storage

import (
	"context"
	"io"
)

// ObjectInfo describes one listed object.
type ObjectInfo struct {
	Key  string
	Size int64
}

// Object is a fetched object. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Storage is the interface for listing, uploading and retrieving objects in one bucket.
type Storage interface {
	// List returns every object whose key starts with prefix, in backend listing order.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	// Upload streams data to the store under the given key, replacing any existing object.
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	// Download opens the object identified by key.
	// A missing key yields an error matching ErrObjectNotFound.
	Download(ctx context.Context, key string) (*Object, error)
}
