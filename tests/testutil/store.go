// Package testutil provides shared helpers for package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/mvu/taskpad/internal/storage"
	"github.com/mvu/taskpad/internal/store"
)

// NewTestAdapter creates an in-memory SQLite adapter with all migrations
// applied. It is closed automatically when the test completes.
func NewTestAdapter(t *testing.T) *storage.SQLiteAdapter {
	t.Helper()

	a, err := storage.NewSQLiteAdapter(":memory:")
	if err != nil {
		t.Fatalf("creating test adapter: %v", err)
	}

	t.Cleanup(func() {
		if err := a.Close(); err != nil {
			t.Errorf("closing test adapter: %v", err)
		}
	})

	return a
}

// NewTestStore creates an initialized store on the given adapter (a fresh
// memory adapter when nil) and closes it when the test completes.
func NewTestStore(t *testing.T, adapter storage.Adapter, opts ...store.Option) *store.Store {
	t.Helper()

	if adapter == nil {
		adapter = storage.NewMemoryAdapter()
	}

	s := store.New(adapter, nil, opts...)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("initializing test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}
