package usecase

import (
	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

// JWTService defines the interface for JWT operations. Tokens are issued by
// the account service; this service only needs to verify them, and issuing is
// kept for tooling and tests that share the secret.
type JWTService interface {
	GenerateAccessToken(userID string, role entity.UserRole) (string, error)
	ParseAccessToken(token string) (*entity.Claims, error)
}
