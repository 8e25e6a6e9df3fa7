package contract

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// IReelRepository is the durable store for reels.
type IReelRepository interface {
	CreateReel(ctx context.Context, reel *entity.Reel) error
	// GetReelByID returns ErrNotFound when the reel does not exist.
	GetReelByID(ctx context.Context, reelID string) (*entity.Reel, error)
	DeleteReel(ctx context.Context, reelID string) error
	GetReelsByOwner(ctx context.Context, ownerID string, page, pageSize int) ([]*entity.Reel, error)
	ListPublicReels(ctx context.Context, page, pageSize int) ([]*entity.Reel, error)
	// IncrementViewCount atomically bumps the lifetime view count and returns the new value.
	IncrementViewCount(ctx context.Context, reelID string) (int64, error)
}
