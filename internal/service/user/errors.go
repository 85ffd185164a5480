package user

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrForbidden         = errors.New("not allowed to access this account")
	ErrUsernameTaken     = errors.New("username already registered")
	ErrEmailTaken        = errors.New("email already registered")
	ErrPhoneTaken        = errors.New("phone number already registered")
	ErrEmptyFeedback     = errors.New("feedback text is required")
	ErrEmptyNotification = errors.New("notification text is required")
	ErrNotificationIndex = errors.New("notification not found")
	ErrImageNotFound     = errors.New("image not found")
	ErrInvalidInput      = errors.New("invalid input")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
