package entity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the read-only view of an account this service needs. Accounts are
// managed elsewhere.
type User struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Role      UserRole  `bson:"role" json:"role"`
	IsActive  bool      `bson:"is_active" json:"is_active"`
	AvatarURL *string   `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// UserRole represents the role of a user in the system
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// Claims are the verified contents of an access token.
type Claims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
