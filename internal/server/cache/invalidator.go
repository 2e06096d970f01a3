package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/tuanis-rp/roleplay-api/internal/logging"
)

const invalidateTimeout = 5 * time.Second

// Invalidator applies cache invalidations off the request path. Writers
// submit keys or glob patterns after a successful store commit and return
// immediately; workers enumerate and delete matching entries. Failures are
// logged, never propagated back to the writer. When the queue is full the
// job is dropped with a warning; the entry then ages out within its TTL.
type Invalidator struct {
	cache  Cache
	logger logging.Logger
	q      chan string
	wg     sync.WaitGroup
	once   sync.Once

	mu     sync.RWMutex
	closed bool
}

func NewInvalidator(c Cache, l logging.Logger, workers, qlen int) *Invalidator {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 256
	}

	inv := &Invalidator{
		cache:  c,
		logger: l.With("module", "invalidator"),
		q:      make(chan string, qlen),
	}
	inv.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer inv.wg.Done()
			for pattern := range inv.q {
				inv.apply(pattern)
			}
		}()
	}
	return inv
}

// Submit schedules invalidation of the given keys or patterns. It never
// blocks the caller. Submitting after Close drops the work with a warning.
func (inv *Invalidator) Submit(patterns ...string) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	for _, p := range patterns {
		if inv.closed {
			inv.logger.Warn(context.Background(), "invalidator closed, dropping", "pattern", p)
			continue
		}
		select {
		case inv.q <- p:
		default:
			inv.logger.Warn(context.Background(), "invalidation queue full, dropping", "pattern", p)
		}
	}
}

// Close stops accepting work and waits for queued invalidations to finish.
func (inv *Invalidator) Close() {
	inv.once.Do(func() {
		inv.mu.Lock()
		inv.closed = true
		close(inv.q)
		inv.mu.Unlock()
		inv.wg.Wait()
	})
}

func (inv *Invalidator) apply(pattern string) {
	ctx, cancel := context.WithTimeout(context.Background(), invalidateTimeout)
	defer cancel()

	keys := []string{pattern}
	if strings.ContainsAny(pattern, "*?[") {
		var err error
		keys, err = inv.cache.Keys(ctx, pattern)
		if err != nil {
			inv.logger.Error(ctx, "invalidation enumerate failed", "pattern", pattern, "error", err)
			return
		}
		if len(keys) == 0 {
			return
		}
	}

	if err := inv.cache.Delete(ctx, keys...); err != nil {
		inv.logger.Error(ctx, "invalidation delete failed", "pattern", pattern, "error", err)
	}
}
