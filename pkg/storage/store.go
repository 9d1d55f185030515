// Package storage provides the key-value persistence backends that the
// Stored hook writes through. Values are opaque byte slices; serialization
// is the caller's concern.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when no value exists under the key.
// Callers treat it as "use the fallback", not as a failure.
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal key-value backend.
//
// Implementations must be safe for concurrent use. Write replaces any
// existing value; Delete of a missing key is not an error.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
