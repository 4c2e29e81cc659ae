package service

import (
	"context"
	"io"
)

// MediaStorage defines the interface for storing uploaded media files
// (listing photos and prescription scans) and resolving their public URLs.
type MediaStorage interface {
	// Save writes the content under the given key and returns the public URL
	// where it can be fetched.
	Save(ctx context.Context, key string, contentType string, content io.Reader) (string, error)

	// Delete removes the object stored under the given key. Deleting a key
	// that does not exist is not an error.
	Delete(ctx context.Context, key string) error
}
