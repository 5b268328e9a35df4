package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Auth flow errors
	ErrIncorrectCredentials = errors.New("incorrect email or password")
	ErrWrongCurrentPassword = errors.New("current password is wrong")
	ErrResetTokenInvalid    = errors.New("reset token is invalid or has expired")
	ErrEmailSendFailed      = errors.New("could not send email")
)
