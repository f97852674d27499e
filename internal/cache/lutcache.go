package cache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/colorlut/internal/profile"
	"github.com/gogpu/colorlut/lut"
)

// BuildFunc builds the table for one configuration.
type BuildFunc func(ctx context.Context, p profile.Params) (*lut.Table, error)

// State pairs a configuration with the table built for it.
type State struct {
	Params profile.Params
	Table  *lut.Table
}

// Ensurer is implemented by both cache flavors.
type Ensurer interface {
	// Ensure returns a table for p. changed reports whether the table
	// differs from the one returned by the previous call.
	Ensure(ctx context.Context, p profile.Params) (table *lut.Table, changed bool, err error)

	// Reset drops all cached state.
	Reset()
}

// Option configures a LUTCache.
type Option func(*LUTCache)

// WithHistory keeps up to n previously built tables besides the current
// one. Each table holds 64 MiB.
func WithHistory(n int) Option {
	return func(c *LUTCache) {
		if n > 0 {
			c.history = New[profile.Params, *lut.Table](n)
		}
	}
}

// WithLogger sets the logger for identity warnings and build diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *LUTCache) {
		if l != nil {
			c.logger = l
		}
	}
}

// LUTCache is a single-entry equality cache over a BuildFunc.
// It is safe for concurrent use; builds are serialized.
type LUTCache struct {
	build   BuildFunc
	history *Cache[profile.Params, *lut.Table]
	logger  *slog.Logger

	mu     sync.Mutex
	state  *State
	failed *failure
	builds atomic.Int64
}

type failure struct {
	params profile.Params
	err    error
}

var _ Ensurer = (*LUTCache)(nil)

// NewLUTCache returns an empty cache that builds tables with build.
func NewLUTCache(build BuildFunc, opts ...Option) *LUTCache {
	c := &LUTCache{build: build, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ensure returns the table for p, building it when p differs from the
// stored configuration. A hit costs one comparison and allocates nothing.
//
// A failed build leaves the previous state in place. The failure is
// remembered, so asking again for the same p returns the same error
// without another build attempt.
func (c *LUTCache) Ensure(ctx context.Context, p profile.Params) (*lut.Table, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != nil && c.state.Params == p {
		return c.state.Table, false, nil
	}
	if c.failed != nil && c.failed.params == p {
		return nil, false, c.failed.err
	}

	if p.IsIdentity() {
		c.logger.Warn("identity configuration, stage is a pass-through")
	}

	if c.history != nil {
		if t, ok := c.history.Get(p); ok {
			c.publish(p, t)
			c.logger.Debug("table restored from history", "params", p)
			return t, true, nil
		}
	}

	t, err := c.build(ctx, p)
	if err != nil {
		c.failed = &failure{params: p, err: err}
		return nil, false, err
	}
	c.builds.Add(1)
	c.publish(p, t)
	return t, true, nil
}

// publish replaces the state. Caller must hold c.mu.
func (c *LUTCache) publish(p profile.Params, t *lut.Table) {
	c.failed = nil
	c.state = &State{Params: p, Table: t}
	if c.history != nil {
		c.history.Set(p, t)
	}
}

// Current returns the stored state, if any.
func (c *LUTCache) Current() (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == nil {
		return State{}, false
	}
	return *c.state, true
}

// Builds returns how many tables have been built since creation.
func (c *LUTCache) Builds() int64 {
	return c.builds.Load()
}

// Reset drops the current state, the remembered failure and the history.
func (c *LUTCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = nil
	c.failed = nil
	if c.history != nil {
		c.history.Clear()
	}
}
