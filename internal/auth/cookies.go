package auth

import (
	"net/http"
	"time"
)

// JWTCookieName is the cookie mirror of the Authorization header.
const JWTCookieName = "jwt"

// CookieConfig holds bearer-cookie settings
type CookieConfig struct {
	ExpiresDays int
	Secure      bool // set in production deployments only
}

// SetJWTCookie mirrors the bearer token into an httpOnly cookie.
func SetJWTCookie(w http.ResponseWriter, token string, cfg CookieConfig) {
	maxAge := cfg.ExpiresDays * 24 * 60 * 60
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(maxAge) * time.Second),
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearJWTCookie deletes the jwt cookie.
func ClearJWTCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     JWTCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
