package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

const defaultOpTimeout = 150 * time.Millisecond

// scanTimeoutFactor bounds DeleteMatching, which runs several round trips.
const scanTimeoutFactor = 4

// decrementFloorScript decrements an existing counter without going below
// zero. Absent keys stay absent so readers can tell "not cached" from zero.
var decrementFloorScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
local n = redis.call('DECR', KEYS[1])
if n < 0 then
	redis.call('INCRBY', KEYS[1], -n)
	n = 0
end
return n
`)

// setMaxScript stores max(current, ARGV[1]) and returns it. A missing or
// non-integer current value is replaced.
var setMaxScript = redis.NewScript(`
local v = tonumber(ARGV[1])
local cur = tonumber(redis.call('GET', KEYS[1]))
if cur == nil or v > cur then
	cur = v
end
if tonumber(ARGV[2]) > 0 then
	redis.call('SET', KEYS[1], tostring(cur), 'PX', ARGV[2])
else
	redis.call('SET', KEYS[1], tostring(cur))
end
return cur
`)

// setIfEqualScript writes KEYS[1] only while KEYS[2] still holds ARGV[3],
// an absent guard reading as the empty string.
var setIfEqualScript = redis.NewScript(`
local guard = redis.call('GET', KEYS[2])
if not guard then
	guard = ''
end
if guard ~= ARGV[3] then
	return 0
end
if tonumber(ARGV[2]) > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[2])
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// CacheClient wraps redis with fail-open semantics: every call is bounded by
// a short timeout and transport errors are logged, counted and turned into
// the zero value of the return type.
type CacheClient struct {
	rdb       redis.UniversalClient
	logger    usecasecontract.IAppLogger
	opTimeout time.Duration
}

var _ contract.ICacheClient = (*CacheClient)(nil)

// NewCacheClient creates a CacheClient. A nil rdb yields a client where every
// call returns its zero value, which is how the service runs without redis.
func NewCacheClient(rdb redis.UniversalClient, logger usecasecontract.IAppLogger, opTimeout time.Duration) *CacheClient {
	if opTimeout <= 0 {
		opTimeout = defaultOpTimeout
	}
	return &CacheClient{rdb: rdb, logger: logger, opTimeout: opTimeout}
}

func (c *CacheClient) enabled() bool { return c.rdb != nil }

func (c *CacheClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.opTimeout)
}

func (c *CacheClient) fail(op, key string, err error) {
	metrics.IncCacheError(op)
	if c.logger != nil {
		c.logger.Warnf("cache %s failed key=%s err=%v", op, key, err)
	}
}

// Get returns the value and whether the key was present.
func (c *CacheClient) Get(ctx context.Context, key string) (string, bool) {
	if !c.enabled() {
		return "", false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.fail("get", key, err)
		}
		return "", false
	}
	return val, true
}

func (c *CacheClient) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if !c.enabled() {
		return
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if err := c.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		c.fail("set", key, err)
	}
}

func (c *CacheClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) bool {
	if !c.enabled() {
		return false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	ok, err := c.rdb.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		c.fail("setnx", key, err)
		return false
	}
	return ok
}

func (c *CacheClient) Delete(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.fail("del", keys[0], err)
	}
}

// DeleteMatching removes every key matching pattern and returns how many
// deletes were issued. The whole scan shares one deadline of a few op timeouts.
func (c *CacheClient) DeleteMatching(ctx context.Context, pattern string) int {
	if !c.enabled() {
		return 0
	}
	ctx, cancel := context.WithTimeout(ctx, scanTimeoutFactor*c.opTimeout)
	defer cancel()
	iter := c.rdb.Scan(ctx, 0, pattern, 1000).Iterator()
	pipe := c.rdb.Pipeline()
	n := 0
	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
		n++
		if n%200 == 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				c.fail("delmatch", pattern, err)
				return n
			}
		}
	}
	if err := iter.Err(); err != nil {
		c.fail("scan", pattern, err)
		return n
	}
	if n%200 != 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			c.fail("delmatch", pattern, err)
		}
	}
	return n
}

func (c *CacheClient) Increment(ctx context.Context, key string, ttl time.Duration) int64 {
	if !c.enabled() {
		return 0
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.fail("incr", key, err)
		return 0
	}
	return incr.Val()
}

func (c *CacheClient) Decrement(ctx context.Context, key string) int64 {
	if !c.enabled() {
		return 0
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	n, err := decrementFloorScript.Run(ctx, c.rdb, []string{key}).Int64()
	if err != nil {
		c.fail("decr", key, err)
		return 0
	}
	return n
}

// SetMax raises key to value if it is absent or lower, refreshes the ttl and
// returns the stored value. ok is false when the cache could not be reached.
func (c *CacheClient) SetMax(ctx context.Context, key string, value int64, ttl time.Duration) (int64, bool) {
	if !c.enabled() {
		return 0, false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	n, err := setMaxScript.Run(ctx, c.rdb, []string{key}, value, ttl.Milliseconds()).Int64()
	if err != nil {
		c.fail("setmax", key, err)
		return 0, false
	}
	return n, true
}

// SetIfEqual stores value under key only while guardKey holds guard, and
// reports whether it wrote.
func (c *CacheClient) SetIfEqual(ctx context.Context, key, value string, ttl time.Duration, guardKey, guard string) bool {
	if !c.enabled() {
		return false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	n, err := setIfEqualScript.Run(ctx, c.rdb, []string{key, guardKey}, value, ttl.Milliseconds(), guard).Int64()
	if err != nil {
		c.fail("setifeq", key, err)
		return false
	}
	return n == 1
}

// SetAdd adds member and reports whether it was new. The ttl is applied only
// when the member was added.
func (c *CacheClient) SetAdd(ctx context.Context, key, member string, ttl time.Duration) bool {
	if !c.enabled() {
		return false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	added, err := c.rdb.SAdd(ctx, key, member).Result()
	if err != nil {
		c.fail("sadd", key, err)
		return false
	}
	if added > 0 && ttl > 0 {
		if err := c.rdb.Expire(ctx, key, ttl).Err(); err != nil {
			c.fail("expire", key, err)
		}
	}
	return added > 0
}

func (c *CacheClient) SetIsMember(ctx context.Context, key, member string) bool {
	if !c.enabled() {
		return false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	ok, err := c.rdb.SIsMember(ctx, key, member).Result()
	if err != nil {
		c.fail("sismember", key, err)
		return false
	}
	return ok
}

func (c *CacheClient) SetSize(ctx context.Context, key string) int64 {
	if !c.enabled() {
		return 0
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	n, err := c.rdb.SCard(ctx, key).Result()
	if err != nil {
		c.fail("scard", key, err)
		return 0
	}
	return n
}

func (c *CacheClient) SortedSetUpsertScore(ctx context.Context, key, member string, score float64) {
	if !c.enabled() {
		return
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	if err := c.rdb.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		c.fail("zadd", key, err)
	}
}

func (c *CacheClient) SortedSetIncrementScore(ctx context.Context, key, member string, delta float64) float64 {
	if !c.enabled() {
		return 0
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	score, err := c.rdb.ZIncrBy(ctx, key, delta, member).Result()
	if err != nil {
		c.fail("zincrby", key, err)
		return 0
	}
	return score
}

func (c *CacheClient) SortedSetScore(ctx context.Context, key, member string) (float64, bool) {
	if !c.enabled() {
		return 0, false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	score, err := c.rdb.ZScore(ctx, key, member).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.fail("zscore", key, err)
		}
		return 0, false
	}
	return score, true
}

func (c *CacheClient) SortedSetTop(ctx context.Context, key string, n int) []string {
	if !c.enabled() || n <= 0 {
		return []string{}
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	members, err := c.rdb.ZRevRange(ctx, key, 0, int64(n-1)).Result()
	if err != nil {
		c.fail("zrevrange", key, err)
		return []string{}
	}
	return members
}

func (c *CacheClient) SortedSetRemove(ctx context.Context, key string, members ...string) {
	if !c.enabled() || len(members) == 0 {
		return
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := c.rdb.ZRem(ctx, key, args...).Err(); err != nil {
		c.fail("zrem", key, err)
	}
}

// Ping is the one call that reports failure, for health checks.
func (c *CacheClient) Ping(ctx context.Context) error {
	if !c.enabled() {
		return errors.New("cache disabled")
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}
