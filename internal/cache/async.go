package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gogpu/colorlut/internal/profile"
	"github.com/gogpu/colorlut/lut"
)

// AsyncLUTCache rebuilds tables on a background goroutine and publishes
// them with an atomic swap. Only the very first Ensure blocks; after that a
// configuration change returns the last published table until the new one
// is ready.
type AsyncLUTCache struct {
	inner *LUTCache

	published atomic.Pointer[State]

	mu       sync.Mutex
	want     profile.Params
	building bool
	failed   *failure
	lastSeen *lut.Table
	wg       sync.WaitGroup
}

var _ Ensurer = (*AsyncLUTCache)(nil)

// NewAsyncLUTCache wraps inner. inner must not be used directly afterwards.
func NewAsyncLUTCache(inner *LUTCache) *AsyncLUTCache {
	return &AsyncLUTCache{inner: inner}
}

// Ensure returns the newest published table and schedules a rebuild when p
// differs from it. A background failure for p is returned by the next
// Ensure that asks for p.
func (c *AsyncLUTCache) Ensure(ctx context.Context, p profile.Params) (*lut.Table, bool, error) {
	cur := c.published.Load()
	if cur == nil {
		t, _, err := c.inner.Ensure(ctx, p)
		if err != nil {
			return nil, false, err
		}
		cur = &State{Params: p, Table: t}
		c.published.CompareAndSwap(nil, cur)
		cur = c.published.Load()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cur.Params != p {
		if c.failed != nil && c.failed.params == p {
			return nil, false, c.failed.err
		}
		c.want = p
		if !c.building {
			c.building = true
			c.wg.Add(1)
			go c.run(context.WithoutCancel(ctx))
		}
	}

	changed := cur.Table != c.lastSeen
	c.lastSeen = cur.Table
	return cur.Table, changed, nil
}

func (c *AsyncLUTCache) run(ctx context.Context) {
	defer c.wg.Done()
	for {
		c.mu.Lock()
		p := c.want
		c.mu.Unlock()

		t, _, err := c.inner.Ensure(ctx, p)

		c.mu.Lock()
		if err != nil {
			c.failed = &failure{params: p, err: err}
		} else {
			c.failed = nil
			c.published.Store(&State{Params: p, Table: t})
		}
		if c.want == p {
			c.building = false
			c.mu.Unlock()
			return
		}
		c.mu.Unlock()
	}
}

// Wait blocks until no rebuild is in flight.
func (c *AsyncLUTCache) Wait() {
	c.wg.Wait()
}

// Builds returns how many tables the wrapped cache has built.
func (c *AsyncLUTCache) Builds() int64 {
	return c.inner.Builds()
}

// Reset waits for an in-flight rebuild and then drops all state.
func (c *AsyncLUTCache) Reset() {
	c.wg.Wait()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.published.Store(nil)
	c.failed = nil
	c.lastSeen = nil
	c.want = profile.Params{}
	c.inner.Reset()
}
