// Package cache keeps built color tables so they are rebuilt only when the
// adjustment configuration actually changes.
//
// # LUTCache
//
// A single-entry equality cache: Ensure returns the stored table when the
// requested [profile.Params] equal the stored ones, and builds otherwise.
// An optional bounded history keeps recently used tables so that toggling
// between a few configurations does not rebuild.
//
//	c := cache.NewLUTCache(builder.Build, cache.WithHistory(4))
//	table, changed, err := c.Ensure(ctx, params)
//
// # AsyncLUTCache
//
// Wraps a LUTCache and moves rebuilds after the first one to a background
// goroutine. Callers keep receiving the previously published table until the
// new one is complete; publication is a single atomic pointer swap.
//
// # Cache[K, V]
//
// The generic LRU map backing the history.
package cache
