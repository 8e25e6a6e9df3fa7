package contract

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// ISavedRepository persists reel bookmarks.
type ISavedRepository interface {
	GetSaved(ctx context.Context, userID, reelID string) (*entity.SavedReel, error)
	InsertSaved(ctx context.Context, saved *entity.SavedReel) error
	DeleteSaved(ctx context.Context, userID, reelID string) error
	DeleteSavesByReel(ctx context.Context, reelID string) error
}
