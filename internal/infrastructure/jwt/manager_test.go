package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikiasgoitom/Reelrank/internal/domain/entity"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(NewJWTManager("secret"))

	token, err := svc.GenerateAccessToken("user-1", entity.UserRoleUser)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, entity.UserRoleUser, claims.Role)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := NewJWTManager("a").GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	_, err = NewJWTManager("b").VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	mgr := NewJWTManager("secret")
	mgr.ttl = -time.Minute
	token, err := mgr.GenerateAccessToken("user-1", "user")
	require.NoError(t, err)

	_, err = mgr.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_RejectsOtherAlgorithms(t *testing.T) {
	claims := CustomClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret").VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
