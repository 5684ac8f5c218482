package storage

import (
	"context"
	"errors"
	"io"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore keeps uploaded images outside the database.
type BlobStore interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	// Delete succeeds when the blob is already gone.
	Delete(ctx context.Context, key string) error
	// URL returns a time-limited read URL for key.
	URL(ctx context.Context, key string) (string, error)
}
