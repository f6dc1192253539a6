package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/souqhub/marketplace/internal/apperr"
	"github.com/souqhub/marketplace/internal/domain/user"
)

// Claims is the JWT payload carried by every bearer token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// signToken issues an HS256 token for u, valid for ttl.
func signToken(u user.User, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		UserID: u.ID,
		Role:   string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", apperr.Internal("sign token", err)
	}
	return signed, nil
}

// parseToken verifies signature and expiry. Every failure collapses into a
// single Unauthenticated error to avoid leaking why verification failed.
func parseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthenticated("invalid token")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperr.Unauthenticated("invalid token")
	}
	return claims, nil
}
