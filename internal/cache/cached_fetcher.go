package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CachedFetcher wraps a single loader and cache key with a TTLCache plus a
// daemon goroutine that proactively refreshes the value every interval.
type CachedFetcher[V any] struct {
	cache    *TTLCache[string, V]
	key      string
	loader   func(ctx context.Context) (V, error)
	interval time.Duration
	logger   *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewCachedFetcher builds a fetcher over cache, refreshing key every
// interval by calling loader.
func NewCachedFetcher[V any](cache *TTLCache[string, V], key string, loader func(ctx context.Context) (V, error), interval time.Duration, logger *zap.Logger) *CachedFetcher[V] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedFetcher[V]{
		cache:    cache,
		key:      key,
		loader:   loader,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Get returns the cached value, loading it synchronously on a cold cache.
func (f *CachedFetcher[V]) Get(ctx context.Context) (V, error) {
	return f.cache.GetOrLoad(f.key, func() (V, error) {
		return f.loader(ctx)
	}, false)
}

// Start launches the background refresh daemon. Safe to call once; a
// second call is a no-op.
func (f *CachedFetcher[V]) Start(ctx context.Context) {
	f.once.Do(func() {
		ctx, cancel := context.WithCancel(ctx)
		f.cancel = cancel
		go f.run(ctx)
	})
}

func (f *CachedFetcher[V]) run(ctx context.Context) {
	defer close(f.done)
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v, err := f.loader(ctx)
			if err != nil {
				f.logger.Warn("cached fetcher background refresh failed",
					zap.String("key", f.key), zap.Error(err))
				continue
			}
			f.cache.Set(f.key, v)
		}
	}
}

// Stop cancels the background daemon and waits up to grace for it to
// terminate.
func (f *CachedFetcher[V]) Stop(grace time.Duration) {
	if f.cancel == nil {
		return
	}
	f.cancel()

	timer := time.NewTimer(grace)
	defer timer.Stop()
	select {
	case <-f.done:
	case <-timer.C:
		f.logger.Warn("cached fetcher did not stop within grace period",
			zap.String("key", f.key), zap.Duration("grace", grace))
	}
}
