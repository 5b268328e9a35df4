package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer-token claim set. It carries the user identifier and
// the registered iat/exp claims, nothing else.
type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}
