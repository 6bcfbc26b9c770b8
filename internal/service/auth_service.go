package service

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/junyours/occ-admission-sub001/internal/models"
	appErrors "github.com/junyours/occ-admission-sub001/pkg/errors"
)

// AuthService validates platform-issued access tokens. The gateway never
// issues tokens itself; counselors sign in against the platform's auth
// service and present its JWT here.
type AuthService struct {
	secret []byte
}

// NewAuthService constructs the service.
func NewAuthService(secret string) *AuthService {
	return &AuthService{secret: []byte(secret)}
}

// ValidateToken parses and verifies an access token.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	claims := &models.JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	if claims.UserID == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token missing subject")
	}
	return claims, nil
}
