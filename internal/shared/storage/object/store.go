package object

import (
	"context"
	"io"
)

// Store is the contract for persisting and retrieving uploaded resume files.
type Store interface {
	// Save persists the reader under the user's namespace and returns the
	// storage key, the number of bytes written, and the sniffed MIME type.
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	// Open retrieves a previously saved object.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes a stored object. Missing objects are not an error.
	Delete(ctx context.Context, storageKey string) error
}
