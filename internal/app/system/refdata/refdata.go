// Package refdata holds a read-through cache of the directory's reference
// lists (states, dioceses, parishes).
//
// Every page that shows a cascade or a denormalised name needs all three
// lists. The cache loads them together and shares one in-flight load between
// concurrent callers holding the same token. It is invalidated explicitly
// after any successful write so the next reader sees the backend's current
// state.
package refdata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/diocesehub/internal/app/system/backend"
	"github.com/dalemusser/diocesehub/internal/app/system/timeouts"
	"github.com/dalemusser/diocesehub/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Snapshot is one consistent load of the three reference lists.
type Snapshot struct {
	States   []models.State
	Dioceses []models.Diocese
	Parishes []models.Parish
	LoadedAt time.Time
}

// Source fetches the raw lists. backend.Client satisfies it through
// NewBackendSource; tests substitute a fake.
type Source interface {
	States(ctx context.Context) ([]models.State, error)
	Dioceses(ctx context.Context) ([]models.Diocese, error)
	Parishes(ctx context.Context) ([]models.Parish, error)
}

// Cache is safe for concurrent use.
type Cache struct {
	src Source
	ttl time.Duration
	log *zap.Logger
	now func() time.Time

	mu   sync.RWMutex
	snap *Snapshot
	gen  uint64

	group singleflight.Group
}

// New returns a Cache over src. A ttl of 0 disables time-based expiry; the
// cache is then refreshed only by Invalidate.
func New(src Source, ttl time.Duration, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{src: src, ttl: ttl, log: logger, now: time.Now}
}

// Get returns the cached snapshot, loading it if absent or expired.
//
// Callers with the same bearer token share one in-flight load. The load runs
// detached from the caller's cancellation under its own Medium deadline, so a
// caller that gives up only stops waiting; the others still get the result.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap, gen := c.snap, c.gen
	c.mu.RUnlock()
	if snap != nil && !c.expired(snap) {
		return snap, nil
	}

	ch := c.group.DoChan(flightKey(gen, backend.TokenFrom(ctx)), func() (any, error) {
		return c.load(context.WithoutCancel(ctx), gen)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			c.log.Warn("reference data load failed", zap.Error(res.Err))
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) load(ctx context.Context, gen uint64) (*Snapshot, error) {
	// A load that finished between the caller's read and this flight may
	// already have filled the cache.
	c.mu.RLock()
	cur := c.snap
	c.mu.RUnlock()
	if cur != nil && !c.expired(cur) {
		return cur, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Medium())
	defer cancel()
	s, err := Load(ctx, c.src)
	if err != nil {
		return nil, err
	}
	s.LoadedAt = c.now()

	c.mu.Lock()
	// Drop the result if an Invalidate raced with this load.
	if c.gen == gen {
		c.snap = s
	}
	c.mu.Unlock()
	return s, nil
}

// flightKey scopes a shared load to one generation and one bearer token, so
// a rejected token never fails another user's load.
func flightKey(gen uint64, token string) string {
	sum := sha256.Sum256([]byte(token))
	return fmt.Sprintf("snapshot-%d-%s", gen, hex.EncodeToString(sum[:8]))
}

// Invalidate discards the cached snapshot. Call after any successful
// create, update or delete.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.gen++
	c.mu.Unlock()
}

func (c *Cache) expired(s *Snapshot) bool {
	return c.ttl > 0 && c.now().Sub(s.LoadedAt) >= c.ttl
}

// Load fetches all three lists concurrently. Any failure fails the whole
// load; there is no partial snapshot.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	var s Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := src.States(gctx)
		if err != nil {
			return fmt.Errorf("load states: %w", err)
		}
		s.States = v
		return nil
	})
	g.Go(func() error {
		v, err := src.Dioceses(gctx)
		if err != nil {
			return fmt.Errorf("load dioceses: %w", err)
		}
		s.Dioceses = v
		return nil
	})
	g.Go(func() error {
		v, err := src.Parishes(gctx)
		if err != nil {
			return fmt.Errorf("load parishes: %w", err)
		}
		s.Parishes = v
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadPage fetches the reference snapshot and a page's own records
// concurrently and waits for both. records is called once; if either side
// fails the page gets no data at all.
func (c *Cache) LoadPage(ctx context.Context, records func(ctx context.Context) error) (*Snapshot, error) {
	var snap *Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.Get(gctx)
		if err != nil {
			return err
		}
		snap = s
		return nil
	})
	if records != nil {
		g.Go(func() error { return records(gctx) })
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
