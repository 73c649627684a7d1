package store

import "errors"

var (
	// ErrCapacityExceeded is returned by AddTask when the collection already
	// holds model.MaxTasks tasks. No task is created.
	ErrCapacityExceeded = errors.New("store: task capacity exceeded")

	// ErrAlreadyInitialized is returned by Initialize on a second call.
	ErrAlreadyInitialized = errors.New("store: already initialized")

	// ErrNotReady is returned by mutations before Initialize has completed.
	ErrNotReady = errors.New("store: not initialized")

	// ErrInvalidSortOption is returned by SetSortOption for unknown values.
	ErrInvalidSortOption = errors.New("store: invalid sort option")

	// ErrInvalidTheme is returned by SetTheme for unknown values.
	ErrInvalidTheme = errors.New("store: invalid theme")
)
