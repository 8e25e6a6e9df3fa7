package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		signals entity.TrendingSignals
		want    float64
	}{
		{"views only", entity.TrendingSignals{Views: 100}, 100},
		{"likes only", entity.TrendingSignals{Likes: 34}, 102},
		{"every weight", entity.TrendingSignals{Views: 1, Likes: 1, Comments: 1, Shares: 1, CompletionRate: 1}, 18},
		{"decay", entity.TrendingSignals{Views: 20, AgeHours: 50}, 15},
		{"decay is capped", entity.TrendingSignals{Views: 20, AgeHours: 1000}, 10},
		{"negative age ignored", entity.TrendingSignals{Views: 5, AgeHours: -3}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.signals), 1e-9)
		})
	}
}

func TestTrendingRanker_Ordering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.ranker.UpdateScore(ctx, "A", entity.TrendingSignals{Views: 100})
	b := f.ranker.UpdateScore(ctx, "B", entity.TrendingSignals{Likes: 34})
	assert.Equal(t, 100.0, a)
	assert.Equal(t, 102.0, b)
	assert.Equal(t, []string{"B", "A"}, f.ranker.GetTopTrending(ctx, 2))
	assert.Equal(t, []string{"B"}, f.ranker.GetTopTrending(ctx, 1))
}

func TestTrendingRanker_UpdateOverwrites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ranker.Seed(ctx, "A")
	f.ranker.UpdateScore(ctx, "A", entity.TrendingSignals{Views: 7})
	f.ranker.UpdateScore(ctx, "A", entity.TrendingSignals{Views: 4})

	score, ok := f.ranker.ScoreOf(ctx, "A")
	assert.True(t, ok)
	assert.Equal(t, 4.0, score, "scores are recomputed, never accumulated")
}

func TestTrendingRanker_Tracks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.ranker.IncrementTrackUsage(ctx, "t1", 1)
	f.ranker.IncrementTrackUsage(ctx, "t2", 1)
	assert.Equal(t, 2.0, f.ranker.IncrementTrackUsage(ctx, "t2", 1))
	assert.Equal(t, []string{"t2", "t1"}, f.ranker.GetTopTracks(ctx, 10))

	f.ranker.RemoveTracks(ctx, "t2")
	assert.Equal(t, []string{"t1"}, f.ranker.GetTopTracks(ctx, 10))
	assert.Empty(t, f.ranker.GetTopTrending(ctx, 10), "reel and audio rankings are separate")
}
