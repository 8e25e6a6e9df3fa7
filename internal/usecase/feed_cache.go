package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/sync/singleflight"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	"github.com/mikiasgoitom/Reelrank/internal/infrastructure/metrics"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

// FeedSupplier assembles a feed page from the durable store.
type FeedSupplier func(ctx context.Context) ([]entity.ContentSummary, error)

// FeedCache is a cache-aside store of assembled feed pages keyed by
// (user, feed type, page). Concurrent misses on one key share one supplier call.
type FeedCache struct {
	cache  contract.ICacheClient
	ttl    time.Duration
	group  singleflight.Group
	logger usecasecontract.IAppLogger
}

func NewFeedCache(cache contract.ICacheClient, ttl time.Duration, logger usecasecontract.IAppLogger) *FeedCache {
	return &FeedCache{cache: cache, ttl: ttl, logger: logger}
}

func feedKey(userID string, feedType entity.FeedType, page int) string {
	return fmt.Sprintf("feed:%s:%s:%d", userID, feedType, page)
}

func feedPattern(userID string) string {
	return "feed:" + userID + ":*"
}

// feedGenKey holds a per-user generation bumped by Invalidate. It sits outside
// feedPattern so invalidation does not delete it.
func feedGenKey(userID string) string {
	return "feedgen:" + userID
}

// feedGenTTL outlives any supplier call by a wide margin.
const feedGenTTL = 24 * time.Hour

// GetOrPopulate returns the cached page or builds, stores and returns it.
// An undecodable entry is treated as a miss.
func (f *FeedCache) GetOrPopulate(ctx context.Context, userID string, feedType entity.FeedType, page int, supplier FeedSupplier) ([]entity.ContentSummary, error) {
	key := feedKey(userID, feedType, page)
	start := time.Now()

	if raw, ok := f.cache.Get(ctx, key); ok {
		var items []entity.ContentSummary
		err := sonic.UnmarshalString(raw, &items)
		if err == nil {
			metrics.IncFeedHit()
			metrics.AddHitDuration(time.Since(start).Seconds())
			return items, nil
		}
		f.logger.Warnf("feed cache: undecodable entry key=%s err=%v", key, err)
	}
	metrics.IncFeedMiss()

	// A page built across an Invalidate is returned but never stored, and
	// callers arriving after the Invalidate start a fresh build.
	genKey := feedGenKey(userID)
	gen, _ := f.cache.Get(ctx, genKey)

	// The shared call must not die with whichever caller happened to start it.
	shared := context.WithoutCancel(ctx)
	ch := f.group.DoChan(key+"@"+gen, func() (interface{}, error) {
		items, err := supplier(shared)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []entity.ContentSummary{}
		}
		raw, err := sonic.MarshalString(items)
		if err != nil {
			f.logger.Warnf("feed cache: encode failed key=%s err=%v", key, err)
			return items, nil
		}
		if !f.cache.SetIfEqual(shared, key, raw, f.ttl, genKey, gen) {
			f.logger.Debugf("feed cache: page for user=%s invalidated while building, not stored", userID)
		}
		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		metrics.AddMissDuration(time.Since(start).Seconds())
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]entity.ContentSummary), nil
	}
}

// Invalidate drops every cached page of userID across feed types and bumps
// the user's generation so builds already in flight do not store their page.
func (f *FeedCache) Invalidate(ctx context.Context, userID string) int {
	f.cache.Increment(ctx, feedGenKey(userID), feedGenTTL)
	n := f.cache.DeleteMatching(ctx, feedPattern(userID))
	if n > 0 {
		f.logger.Debugf("feed cache: invalidated %d pages for user=%s", n, userID)
	}
	return n
}
