// Package storage keeps uploaded image bytes either on local disk or in an
// S3-compatible bucket.
package storage

import (
	"context"
	"io"
)

// Store writes and reads image objects by file name.
type Store interface {
	// Put stores body under name and returns where it landed.
	Put(ctx context.Context, name string, body io.Reader, contentType string) (string, error)
	// Open returns the stored object. A missing object yields
	// common.ErrorNotFound.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
}
