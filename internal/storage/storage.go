package storage

import (
	"context"
	"errors"
)

// Record keys for the three independently persisted documents.
const (
	KeyTasks = "tasks_storage"
	KeyTheme = "theme_preference"
	KeySort  = "sort_preference"
)

// ErrNotFound is returned by Load when no value exists for a key. Corrupt
// or unreadable data is reported the same way so callers can fall back to
// their defaults.
var ErrNotFound = errors.New("storage: record not found")

// Adapter is durable key-value storage for serialized state blobs. It has
// no knowledge of task semantics.
type Adapter interface {
	// Load returns the value stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save stores value under key, replacing any existing value.
	Save(ctx context.Context, key string, value []byte) error

	// Close releases underlying resources.
	Close() error
}
