package contract

import (
	"context"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

type IUserRepository interface {
	// GetUserByID returns ErrNotFound when no such user exists.
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}
