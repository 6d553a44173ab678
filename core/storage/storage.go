package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no document exists under the key.
var ErrNotFound = errors.New("storage: key not found")

// ErrQuotaExceeded is returned by Put when writing the document would push
// the backend past its configured capacity. The previous document under the
// key, if any, must survive unchanged.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// Store is a small key to JSON document store. The garage persists its whole
// fleet under a single key, so implementations only need coarse-grained
// atomicity: a failed Put leaves the prior document readable.
type Store interface {
	// Put stores doc under key, replacing any previous document.
	Put(ctx context.Context, key string, doc []byte) error
	// Get returns the document stored under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the document under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
