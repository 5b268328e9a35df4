package models

import (
	"time"
)

// User roles. Role is always server-assigned; signup never accepts one.
const (
	RoleUser      = "user"
	RoleGuide     = "guide"
	RoleLeadGuide = "lead-guide"
	RoleAdmin     = "admin"
)

type User struct {
	ID                   string
	Name                 string
	Email                string
	Photo                string
	Role                 string
	PasswordHash         string // never serialized into responses
	PasswordChangedAt    *time.Time
	PasswordResetToken   *string // sha256 digest of the mailed secret, never the plaintext
	PasswordResetExpires *time.Time
	Active               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin:
		return true
	}
	return false
}

// PasswordChangedAfter reports whether the password was changed after the
// given token issue time. Tokens issued before a password change are stale.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	// Compare at second granularity, matching JWT iat resolution.
	return u.PasswordChangedAt.Unix() > issuedAt.Unix()
}

// HasResetToken reports whether a reset-token pair is currently persisted.
func (u *User) HasResetToken() bool {
	return u.PasswordResetToken != nil && u.PasswordResetExpires != nil
}
