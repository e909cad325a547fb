package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTLExpiry(t *testing.T) {
	c := New[string, int](50*time.Millisecond, 0)
	c.Set("a", 1)

	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	time.Sleep(80 * time.Millisecond)

	_, ok = c.Get("a")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestMaxSizeEvictsOldest(t *testing.T) {
	c := New[string, int](time.Hour, 2)
	c.Set("a", 1)
	time.Sleep(time.Millisecond)
	c.Set("b", 2)
	time.Sleep(time.Millisecond)
	c.Set("c", 3)

	_, ok := c.Get("a")
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)

	assert.Equal(t, int64(1), c.Stats().Evictions)
}

func TestGetOrLoadMissInvokesLoader(t *testing.T) {
	c := New[string, int](time.Hour, 0)
	var calls int32

	v, err := c.GetOrLoad("k", func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 42, nil
	}, false)

	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(1), calls)

	// second call is a cache hit, loader not invoked again
	v, err = c.GetOrLoad("k", func() (int, error) {
		atomic.AddInt32(&calls, 1)
		return 99, nil
	}, false)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, int32(1), calls)
}

func TestGetOrLoadForceRefreshesEvenOnHit(t *testing.T) {
	c := New[string, int](time.Hour, 0)
	c.Set("k", 1)

	v, err := c.GetOrLoad("k", func() (int, error) { return 2, nil }, true)

	require.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestCleanupExpiredReportsCount(t *testing.T) {
	c := New[string, int](10*time.Millisecond, 0)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(30 * time.Millisecond)

	n := c.CleanupExpired()

	assert.Equal(t, 2, n)
	assert.Equal(t, 0, c.Size())
}

func TestCachedFetcherBackgroundRefresh(t *testing.T) {
	underlying := New[string, int](time.Hour, 0)
	var value int32 = 1

	fetcher := NewCachedFetcher(underlying, "k", func(ctx context.Context) (int, error) {
		return int(atomic.AddInt32(&value, 1)), nil
	}, 10*time.Millisecond, nil)

	v, err := fetcher.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	fetcher.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	fetcher.Stop(time.Second)

	cached, ok := underlying.Get("k")
	require.True(t, ok)
	assert.Greater(t, cached, 2)
}

func TestCachedFetcherSwallowsLoaderErrors(t *testing.T) {
	underlying := New[string, int](time.Hour, 0)
	underlying.Set("k", 7)

	fetcher := NewCachedFetcher(underlying, "k", func(ctx context.Context) (int, error) {
		return 0, errors.New("boom")
	}, 10*time.Millisecond, nil)

	fetcher.Start(context.Background())
	time.Sleep(35 * time.Millisecond)
	fetcher.Stop(time.Second)

	v, ok := underlying.Get("k")
	require.True(t, ok)
	assert.Equal(t, 7, v, "a failing loader must not clobber the last good value")
}
