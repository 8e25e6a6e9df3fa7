package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Reelrank/internal/usecase/contract"
)

func likesKey(reelID string) string   { return "reel:" + reelID + ":likes" }
func viewsKey(reelID string) string   { return "reel:" + reelID + ":views" }
func viewersKey(reelID string) string { return "reel:" + reelID + ":viewers" }

// CounterService keeps like and view counters in the cache. A missing key
// means "not cached" and is seeded from the durable store; a stored 0 is a
// real zero. Idempotency of likes is the caller's job (unique row in the
// durable store), this type only counts.
type CounterService struct {
	cache      contract.ICacheClient
	reels      contract.IReelRepository
	likes      contract.ILikeRepository
	counterTTL time.Duration
	viewWindow time.Duration
	logger     usecasecontract.IAppLogger
}

func NewCounterService(cache contract.ICacheClient, reels contract.IReelRepository, likes contract.ILikeRepository, config usecasecontract.IConfigProvider, logger usecasecontract.IAppLogger) *CounterService {
	return &CounterService{
		cache:      cache,
		reels:      reels,
		likes:      likes,
		counterTTL: config.GetCounterTTL(),
		viewWindow: config.GetUniqueViewWindow(),
		logger:     logger,
	}
}

// cached returns the counter value when the key is present and well formed.
func (s *CounterService) cached(ctx context.Context, key string) (int64, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		s.logger.Warnf("counter %s holds non-integer %q, reseeding", key, raw)
		s.cache.Delete(ctx, key)
		return 0, false
	}
	return n, true
}

// seed stores durable under key unless another request seeded it first, in
// which case the winner's value is returned.
func (s *CounterService) seed(ctx context.Context, key string, durable int64) int64 {
	if s.cache.SetNX(ctx, key, strconv.FormatInt(durable, 10), s.counterTTL) {
		return durable
	}
	if n, ok := s.cached(ctx, key); ok {
		return n
	}
	return durable
}

func (s *CounterService) seedLikes(ctx context.Context, reelID string) (int64, error) {
	n, err := s.likes.CountLikes(ctx, reelID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for reel %s: %w", reelID, err)
	}
	return s.seed(ctx, likesKey(reelID), n), nil
}

// recountLikes overwrites the counter with the durable row count. Writers
// never add to a cached value, so a late cache step cannot count a like twice.
func (s *CounterService) recountLikes(ctx context.Context, reelID string) (int64, error) {
	n, err := s.likes.CountLikes(ctx, reelID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes for reel %s: %w", reelID, err)
	}
	s.cache.Set(ctx, likesKey(reelID), strconv.FormatInt(n, 10), s.counterTTL)
	return n, nil
}

// RecordLike is called after the like row was inserted.
func (s *CounterService) RecordLike(ctx context.Context, reelID string) (int64, error) {
	return s.recountLikes(ctx, reelID)
}

// RecordUnlike is called after the like row was deleted.
func (s *CounterService) RecordUnlike(ctx context.Context, reelID string) (int64, error) {
	return s.recountLikes(ctx, reelID)
}

// GetLikeCount returns the cached count, including a cached zero, and falls
// back to counting rows when the key is absent.
func (s *CounterService) GetLikeCount(ctx context.Context, reelID string) (int64, error) {
	if n, ok := s.cached(ctx, likesKey(reelID)); ok {
		return n, nil
	}
	return s.seedLikes(ctx, reelID)
}

// RecordView counts one view. durableTotal is the lifetime count after the
// view was persisted; the counter only moves up to it, so views recorded out
// of order settle on the highest total. The viewer set add is the membership
// test, so two concurrent first views cannot both report first.
func (s *CounterService) RecordView(ctx context.Context, reelID, userID string, durableTotal int64) entity.ViewRecord {
	total, ok := s.cache.SetMax(ctx, viewsKey(reelID), durableTotal, s.counterTTL)
	if !ok {
		total = durableTotal
	}
	first := s.cache.SetAdd(ctx, viewersKey(reelID), userID, s.viewWindow)
	return entity.ViewRecord{Total: total, IsFirstForUser: first}
}

// GetViewCounts returns the lifetime total and the unique viewers of the
// current window.
func (s *CounterService) GetViewCounts(ctx context.Context, reelID string) (entity.ViewCounts, error) {
	if n, ok := s.cached(ctx, viewsKey(reelID)); ok {
		return entity.ViewCounts{Total: n, Unique: s.UniqueViews(ctx, reelID)}, nil
	}
	reel, err := s.reels.GetReelByID(ctx, reelID)
	if err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return entity.ViewCounts{}, ErrReelNotFound
		}
		return entity.ViewCounts{}, fmt.Errorf("failed to load reel %s: %w", reelID, err)
	}
	return s.ViewCountsFor(ctx, reel), nil
}

// ViewCountsFor is GetViewCounts for a reel already loaded from the durable
// store, whose ViewCount is the fallback total.
func (s *CounterService) ViewCountsFor(ctx context.Context, reel *entity.Reel) entity.ViewCounts {
	total, ok := s.cached(ctx, viewsKey(reel.ID))
	if !ok {
		if total, ok = s.cache.SetMax(ctx, viewsKey(reel.ID), reel.ViewCount, s.counterTTL); !ok {
			total = reel.ViewCount
		}
	}
	return entity.ViewCounts{Total: total, Unique: s.UniqueViews(ctx, reel.ID)}
}

func (s *CounterService) UniqueViews(ctx context.Context, reelID string) int64 {
	return s.cache.SetSize(ctx, viewersKey(reelID))
}

// Forget drops every counter of a deleted reel.
func (s *CounterService) Forget(ctx context.Context, reelID string) {
	s.cache.Delete(ctx, likesKey(reelID), viewsKey(reelID), viewersKey(reelID))
}
