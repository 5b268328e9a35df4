package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wanderly/trailhead/internal/models"
)

// TokenManager issues and verifies bearer tokens. Tokens are HS256-signed
// with a server-held secret and carry only the user id plus iat/exp.
type TokenManager struct {
	secret string
	expiry time.Duration
}

func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secret: secret,
		expiry: expiry,
	}
}

// Sign creates a bearer token for the given user id.
func (tm *TokenManager) Sign(userID string) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(tm.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify parses and validates a bearer token. Malformed tokens, bad
// signatures and expired tokens all fail uniformly with ErrUnauthorized;
// callers treat every variant as "not authenticated".
func (tm *TokenManager) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tm.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, models.ErrUnauthorized
	}

	return claims, nil
}
