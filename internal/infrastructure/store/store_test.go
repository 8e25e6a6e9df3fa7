package store_test

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/logger"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/store"
)

func setupCache(t *testing.T) (*store.CacheClient, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return store.NewCacheClient(rdb, logger.NewZapLogger(zap.NewNop()), 500*time.Millisecond), mr
}

func TestGet_DistinguishesAbsentFromZero(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	_, ok := c.Get(ctx, "likes:a")
	assert.False(t, ok)

	c.Set(ctx, "likes:a", "0", 0)
	val, ok := c.Get(ctx, "likes:a")
	assert.True(t, ok)
	assert.Equal(t, "0", val)
}

func TestSetNX(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	assert.True(t, c.SetNX(ctx, "k", "5", time.Minute))
	assert.False(t, c.SetNX(ctx, "k", "9", time.Minute))
	val, _ := c.Get(ctx, "k")
	assert.Equal(t, "5", val)
}

func TestIncrement_RefreshesTTL(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	assert.Equal(t, int64(1), c.Increment(ctx, "views:a", time.Hour))
	assert.Equal(t, int64(2), c.Increment(ctx, "views:a", time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("views:a"))

	assert.Equal(t, int64(1), c.Increment(ctx, "plain", 0))
	assert.Equal(t, time.Duration(0), mr.TTL("plain"))
}

func TestDecrement_FloorsAtZero(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "likes:a", "1", 0)
	assert.Equal(t, int64(0), c.Decrement(ctx, "likes:a"))
	assert.Equal(t, int64(0), c.Decrement(ctx, "likes:a"))
	val, ok := c.Get(ctx, "likes:a")
	require.True(t, ok)
	assert.Equal(t, "0", val)

	assert.Equal(t, int64(0), c.Decrement(ctx, "likes:missing"))
	assert.False(t, mr.Exists("likes:missing"))
}

func TestSetMax_NeverLowersTheCounter(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	n, ok := c.SetMax(ctx, "views:a", 2, time.Hour)
	require.True(t, ok)
	assert.Equal(t, int64(2), n)

	// a late write carrying an older total must not roll the counter back
	n, ok = c.SetMax(ctx, "views:a", 1, time.Hour)
	require.True(t, ok)
	assert.Equal(t, int64(2), n)

	n, _ = c.SetMax(ctx, "views:a", 5, time.Hour)
	assert.Equal(t, int64(5), n)
	val, _ := c.Get(ctx, "views:a")
	assert.Equal(t, "5", val)
	assert.Equal(t, time.Hour, mr.TTL("views:a"))

	require.NoError(t, mr.Set("views:b", "garbage"))
	n, _ = c.SetMax(ctx, "views:b", 3, 0)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, time.Duration(0), mr.TTL("views:b"))
}

func TestSetIfEqual_GuardsOnSecondKey(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	assert.True(t, c.SetIfEqual(ctx, "feed:u1:latest:1", "[]", time.Minute, "feedgen:u1", ""))
	assert.Equal(t, time.Minute, mr.TTL("feed:u1:latest:1"))

	c.Increment(ctx, "feedgen:u1", time.Hour)
	assert.False(t, c.SetIfEqual(ctx, "feed:u1:latest:2", "[]", time.Minute, "feedgen:u1", ""))
	assert.False(t, mr.Exists("feed:u1:latest:2"))

	assert.True(t, c.SetIfEqual(ctx, "feed:u1:latest:2", "[]", time.Minute, "feedgen:u1", "1"))
	assert.True(t, mr.Exists("feed:u1:latest:2"))
}

func TestSetOperations(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	assert.True(t, c.SetAdd(ctx, "viewers:a", "u1", 24*time.Hour))
	assert.False(t, c.SetAdd(ctx, "viewers:a", "u1", 24*time.Hour))
	assert.True(t, c.SetAdd(ctx, "viewers:a", "u2", 24*time.Hour))

	assert.True(t, c.SetIsMember(ctx, "viewers:a", "u1"))
	assert.False(t, c.SetIsMember(ctx, "viewers:a", "u3"))
	assert.Equal(t, int64(2), c.SetSize(ctx, "viewers:a"))
	assert.Equal(t, 24*time.Hour, mr.TTL("viewers:a"))
}

func TestSortedSetOperations(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	c.SortedSetUpsertScore(ctx, "trending", "a", 100)
	c.SortedSetUpsertScore(ctx, "trending", "b", 102)
	c.SortedSetUpsertScore(ctx, "trending", "c", 1)
	assert.Equal(t, []string{"b", "a"}, c.SortedSetTop(ctx, "trending", 2))

	assert.Equal(t, float64(3), c.SortedSetIncrementScore(ctx, "trending", "c", 2))
	score, ok := c.SortedSetScore(ctx, "trending", "c")
	assert.True(t, ok)
	assert.Equal(t, float64(3), score)

	c.SortedSetRemove(ctx, "trending", "b")
	assert.Equal(t, []string{"a", "c"}, c.SortedSetTop(ctx, "trending", 10))

	_, ok = c.SortedSetScore(ctx, "trending", "missing")
	assert.False(t, ok)
}

func TestDeleteMatching(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()

	c.Set(ctx, "feed:u1:latest:1", "[]", time.Minute)
	c.Set(ctx, "feed:u1:mine:2", "[]", time.Minute)
	c.Set(ctx, "feed:u2:latest:1", "[]", time.Minute)

	assert.Equal(t, 2, c.DeleteMatching(ctx, "feed:u1:*"))
	assert.False(t, mr.Exists("feed:u1:latest:1"))
	assert.False(t, mr.Exists("feed:u1:mine:2"))
	assert.True(t, mr.Exists("feed:u2:latest:1"))
}

// silentServer accepts connections and never answers, like a wedged redis.
func silentServer(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	var mu sync.Mutex
	var conns []net.Conn
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, conn := range conns {
			_ = conn.Close()
		}
	})
	return ln.Addr().String()
}

func TestDeleteMatching_BoundedWhenRedisHangs(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:                  silentServer(t),
		MaxRetries:            -1,
		ContextTimeoutEnabled: true,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	c := store.NewCacheClient(rdb, logger.NewZapLogger(zap.NewNop()), 50*time.Millisecond)

	start := time.Now()
	assert.Equal(t, 0, c.DeleteMatching(context.Background(), "feed:u1:*"))
	assert.Less(t, time.Since(start), time.Second)
}

func TestFailOpen_WhenRedisIsDown(t *testing.T) {
	c, mr := setupCache(t)
	ctx := context.Background()
	mr.Close()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	c.Set(ctx, "k", "v", time.Minute)
	assert.False(t, c.SetNX(ctx, "k", "v", time.Minute))
	assert.Equal(t, int64(0), c.Increment(ctx, "k", time.Minute))
	assert.Equal(t, int64(0), c.Decrement(ctx, "k"))
	_, ok = c.SetMax(ctx, "k", 3, time.Minute)
	assert.False(t, ok)
	assert.False(t, c.SetIfEqual(ctx, "k", "v", time.Minute, "g", ""))
	assert.False(t, c.SetAdd(ctx, "s", "m", time.Minute))
	assert.False(t, c.SetIsMember(ctx, "s", "m"))
	assert.Equal(t, int64(0), c.SetSize(ctx, "s"))
	c.SortedSetUpsertScore(ctx, "z", "m", 1)
	assert.Equal(t, float64(0), c.SortedSetIncrementScore(ctx, "z", "m", 1))
	assert.Empty(t, c.SortedSetTop(ctx, "z", 5))
	assert.Equal(t, 0, c.DeleteMatching(ctx, "feed:*"))
	assert.Error(t, c.Ping(ctx))
}

func TestNilClientIsDisabled(t *testing.T) {
	c := store.NewCacheClient(nil, nil, 0)
	ctx := context.Background()

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, int64(0), c.Increment(ctx, "k", 0))
	_, ok = c.SetMax(ctx, "k", 1, 0)
	assert.False(t, ok)
	assert.Empty(t, c.SortedSetTop(ctx, "z", 3))
	assert.Error(t, c.Ping(ctx))
}
