package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	hubdown "github.com/alnah/go-hubdown"
	"github.com/alnah/go-hubdown/internal/config"
)

func TestOpenStore(t *testing.T) {
	t.Parallel()

	t.Run("none disables caching", func(t *testing.T) {
		t.Parallel()

		store, closeStore, err := openStore(config.CacheConfig{Driver: config.DriverNone})
		if err != nil || store != nil {
			t.Errorf("openStore(none) = %v, %v; want nil store", store, err)
		}
		if err := closeStore(); err != nil {
			t.Errorf("close error: %v", err)
		}
	})

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		store, _, err := openStore(config.CacheConfig{Driver: "Memory"})
		if err != nil {
			t.Fatalf("openStore(memory) error: %v", err)
		}
		if _, ok := store.(*hubdown.MemoryStore); !ok {
			t.Errorf("store type = %T, want *hubdown.MemoryStore", store)
		}
	})

	t.Run("sqlite round trip", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "cache.db")
		store, closeStore, err := openStore(config.CacheConfig{Driver: config.DriverSQLite, Path: path})
		if err != nil {
			t.Fatalf("openStore(sqlite) error: %v", err)
		}
		defer closeStore()

		ctx := context.Background()
		if err := store.Put(ctx, "k", hubdown.Result{"content": "x"}); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
		if !store.Get(ctx, "k").Hit() {
			t.Error("Get() after Put() missed")
		}
	})

	t.Run("sqlite in missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing", "cache.db")
		_, _, err := openStore(config.CacheConfig{Driver: config.DriverSQLite, Path: path})
		if !errors.Is(err, ErrOpenCache) {
			t.Errorf("error = %v, want ErrOpenCache", err)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		_, _, err := openStore(config.CacheConfig{Driver: "redis"})
		if !errors.Is(err, ErrOpenCache) || !errors.Is(err, config.ErrInvalidValue) {
			t.Errorf("error = %v, want ErrOpenCache and ErrInvalidValue", err)
		}
	})
}
