package main

import (
	"fmt"

	"transitkernel.dev/core/snapshot"
	"transitkernel.dev/core/snapshot/cache"
)

// loadSnapshot opens the configured cache driver and reloads the
// frozen snapshot it holds.
func loadSnapshot() (*snapshot.Data, error) {
	switch cacheDriver {
	case "sqlite":
		store, err := cache.OpenSQLiteStore(cache.SQLiteConfig{OnDisk: true, Path: cachePath})
		if err != nil {
			return nil, fmt.Errorf("opening sqlite cache: %w", err)
		}
		defer store.Close()
		return store.Load()
	case "postgres":
		store, err := cache.OpenPostgresStore(cachePath, false)
		if err != nil {
			return nil, fmt.Errorf("opening postgres cache: %w", err)
		}
		defer store.Close()
		return store.Load()
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cacheDriver)
	}
}
