package contract

import (
	"context"
	"time"
)

// ICacheClient is the low-latency keyed store used for counters, trending
// sets and feed pages. Implementations fail open: on transport errors they
// log and return the zero value instead of an error.
type ICacheClient interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	// SetNX stores value only if key is absent and reports whether it did.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) bool
	Delete(ctx context.Context, keys ...string)
	DeleteMatching(ctx context.Context, pattern string) int
	// Increment adds one and, when ttl > 0, refreshes the key expiry.
	Increment(ctx context.Context, key string, ttl time.Duration) int64
	// Decrement subtracts one, never going below zero.
	Decrement(ctx context.Context, key string) int64
	// SetMax stores max(current, value) and returns it; ok is false when the
	// store was unreachable.
	SetMax(ctx context.Context, key string, value int64, ttl time.Duration) (int64, bool)
	// SetIfEqual writes key only while guardKey holds guard. An absent
	// guardKey matches the empty string.
	SetIfEqual(ctx context.Context, key, value string, ttl time.Duration, guardKey, guard string) bool

	SetAdd(ctx context.Context, key, member string, ttl time.Duration) bool
	SetIsMember(ctx context.Context, key, member string) bool
	SetSize(ctx context.Context, key string) int64

	SortedSetUpsertScore(ctx context.Context, key, member string, score float64)
	SortedSetIncrementScore(ctx context.Context, key, member string, delta float64) float64
	SortedSetScore(ctx context.Context, key, member string) (float64, bool)
	// SortedSetTop returns up to n members ordered by descending score.
	SortedSetTop(ctx context.Context, key string, n int) []string
	SortedSetRemove(ctx context.Context, key string, members ...string)

	Ping(ctx context.Context) error
}
