package models

import "github.com/golang-jwt/jwt/v5"

// UserRole mirrors the roles issued by the platform's auth service.
type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleCounselor UserRole = "counselor"
)

// JWTClaims are the claims embedded in platform-issued access tokens. This
// gateway validates tokens; it never issues them.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
