package contract

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// ILikeRepository persists (user, reel) like relationships. The pair is
// unique; InsertLike returns ErrDuplicate when it already exists.
type ILikeRepository interface {
	GetLike(ctx context.Context, userID, reelID string) (*entity.Like, error)
	InsertLike(ctx context.Context, like *entity.Like) error
	DeleteLike(ctx context.Context, userID, reelID string) error
	DeleteLikesByReel(ctx context.Context, reelID string) error
	CountLikes(ctx context.Context, reelID string) (int64, error)
}
