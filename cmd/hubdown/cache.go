package main

import (
	"errors"
	"fmt"
	"strings"

	hubdown "github.com/alnah/go-hubdown"
	"github.com/alnah/go-hubdown/internal/config"
)

// ErrOpenCache is returned when the configured cache cannot be opened.
var ErrOpenCache = errors.New("failed to open cache")

// openStore returns the Store for the configured driver and a function
// releasing it. The none driver returns a nil Store, which disables caching.
func openStore(cfg config.CacheConfig) (hubdown.Store, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(cfg.Driver) {
	case "", config.DriverNone:
		return nil, noop, nil
	case config.DriverMemory:
		return hubdown.NewMemoryStore(), noop, nil
	case config.DriverSQLite:
		store, err := hubdown.NewSQLiteStore(cfg.Path)
		if err != nil {
			return nil, noop, fmt.Errorf("%w: %w", ErrOpenCache, err)
		}
		return store, store.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: %w: cache driver %q", ErrOpenCache, config.ErrInvalidValue, cfg.Driver)
	}
}
