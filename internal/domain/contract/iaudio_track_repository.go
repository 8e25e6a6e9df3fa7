package contract

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// IAudioTrackRepository is the music library.
type IAudioTrackRepository interface {
	CreateTrack(ctx context.Context, track *entity.AudioTrack) error
	GetTrackByID(ctx context.Context, trackID string) (*entity.AudioTrack, error)
	IncrementUsage(ctx context.Context, trackID string, delta int64) error
}
