package usecase

import (
	"context"
	"math"

	"github.com/mikiasgoitom/Reelrank/internal/domain/contract"
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

const (
	trendingReelsKey = "trending:reels"
	trendingAudioKey = "trending:audio"

	// baselineScore makes a new reel rankable before its first engagement.
	baselineScore = 1.0

	weightView       = 1.0
	weightLike       = 3.0
	weightComment    = 4.0
	weightShare      = 5.0
	weightCompletion = 5.0
	decayPerHour     = 0.1
	maxDecay         = 10.0
)

// Score is the single trending formula used for every update:
//
//	views + 3*likes + 4*comments + 5*shares + 5*completion - min(0.1*ageHours, 10)
func Score(s entity.TrendingSignals) float64 {
	decay := math.Min(math.Max(s.AgeHours, 0)*decayPerHour, maxDecay)
	return float64(s.Views)*weightView +
		float64(s.Likes)*weightLike +
		float64(s.Comments)*weightComment +
		float64(s.Shares)*weightShare +
		s.CompletionRate*weightCompletion -
		decay
}

// TrendingRanker keeps one sorted set for reels and one for audio tracks.
// Reel scores are recomputed from fresh signals and overwritten, so
// concurrent updates resolve to the last writer instead of accumulating.
// Entries of deleted reels are not removed here; readers filter them.
type TrendingRanker struct {
	cache contract.ICacheClient
}

func NewTrendingRanker(cache contract.ICacheClient) *TrendingRanker {
	return &TrendingRanker{cache: cache}
}

// UpdateScore computes the score and overwrites the reel's entry.
func (r *TrendingRanker) UpdateScore(ctx context.Context, reelID string, signals entity.TrendingSignals) float64 {
	score := Score(signals)
	r.cache.SortedSetUpsertScore(ctx, trendingReelsKey, reelID, score)
	return score
}

func (r *TrendingRanker) Seed(ctx context.Context, reelID string) {
	r.cache.SortedSetUpsertScore(ctx, trendingReelsKey, reelID, baselineScore)
}

// ScoreOf returns the reel's current score, if ranked.
func (r *TrendingRanker) ScoreOf(ctx context.Context, reelID string) (float64, bool) {
	return r.cache.SortedSetScore(ctx, trendingReelsKey, reelID)
}

// GetTopTrending returns up to n reel IDs by descending score. The IDs may
// include deleted or hidden reels.
func (r *TrendingRanker) GetTopTrending(ctx context.Context, n int) []string {
	return r.cache.SortedSetTop(ctx, trendingReelsKey, n)
}

func (r *TrendingRanker) Remove(ctx context.Context, reelIDs ...string) {
	r.cache.SortedSetRemove(ctx, trendingReelsKey, reelIDs...)
}

// IncrementTrackUsage bumps an audio track by delta uses. Audio has no decay.
func (r *TrendingRanker) IncrementTrackUsage(ctx context.Context, trackID string, delta float64) float64 {
	return r.cache.SortedSetIncrementScore(ctx, trendingAudioKey, trackID, delta)
}

func (r *TrendingRanker) GetTopTracks(ctx context.Context, n int) []string {
	return r.cache.SortedSetTop(ctx, trendingAudioKey, n)
}

func (r *TrendingRanker) RemoveTracks(ctx context.Context, trackIDs ...string) {
	r.cache.SortedSetRemove(ctx, trendingAudioKey, trackIDs...)
}
