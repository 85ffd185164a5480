package auth

import "errors"

var (
	ErrMissingFields      = errors.New("username, email, phone and password are required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrUsernameTaken      = errors.New("username already registered")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPhoneTaken         = errors.New("phone number already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrResetCodeExpired   = errors.New("reset code has expired or does not exist")
	ErrResetCodeInvalid   = errors.New("reset code is incorrect")
	ErrResetMaxAttempts   = errors.New("too many incorrect reset attempts")
)
