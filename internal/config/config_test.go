package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "postgres")

	if _, err := Load(); err == nil {
		t.Error("expected error when JWT_SECRET is missing")
	}
}

func TestLoad_RequiresDBPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-development-secret")
	t.Setenv("DB_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Error("expected error when DB_PASSWORD is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-development-secret")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("ENV", "development")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.TokenExpiry != 90*24*time.Hour {
		t.Errorf("TokenExpiry = %v, want 90 days", cfg.Auth.TokenExpiry)
	}
	if cfg.Auth.CookieExpiresDays != 90 {
		t.Errorf("CookieExpiresDays = %d, want 90", cfg.Auth.CookieExpiresDays)
	}
	if cfg.Auth.ResetTokenTTL != 10*time.Minute {
		t.Errorf("ResetTokenTTL = %v, want 10m", cfg.Auth.ResetTokenTTL)
	}
	if cfg.Auth.RateLimitPerMinute != 10 {
		t.Errorf("RateLimitPerMinute = %d, want 10", cfg.Auth.RateLimitPerMinute)
	}
	if cfg.Server.IsProduction() {
		t.Error("development config should not report production")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "a-long-enough-development-secret")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("JWT_EXPIRES_IN", "15m")
	t.Setenv("RESET_TOKEN_TTL", "5m")
	t.Setenv("JWT_COOKIE_EXPIRES_DAYS", "7")
	t.Setenv("AUTH_RATE_LIMIT_PER_MINUTE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Auth.TokenExpiry != 15*time.Minute {
		t.Errorf("TokenExpiry = %v, want 15m", cfg.Auth.TokenExpiry)
	}
	if cfg.Auth.ResetTokenTTL != 5*time.Minute {
		t.Errorf("ResetTokenTTL = %v, want 5m", cfg.Auth.ResetTokenTTL)
	}
	if cfg.Auth.CookieExpiresDays != 7 {
		t.Errorf("CookieExpiresDays = %d, want 7", cfg.Auth.CookieExpiresDays)
	}
	if cfg.Auth.RateLimitPerMinute != 25 {
		t.Errorf("RateLimitPerMinute = %d, want 25", cfg.Auth.RateLimitPerMinute)
	}
}

func TestValidateJWTSecret(t *testing.T) {
	if err := validateJWTSecret("short", "development"); err == nil {
		t.Error("expected error for short secret")
	}
	if err := validateJWTSecret("sixteen-chars-ok", "production"); err == nil {
		t.Error("production requires 32 characters")
	}
	if err := validateJWTSecret("this-secret-is-long-enough-for-prod!", "production"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
