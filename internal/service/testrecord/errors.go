package testrecord

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("test record not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrForbidden     = errors.New("test record belongs to another user")
	ErrMissingFields = errors.New("userId, testType, testName, result and date are required")
	ErrInvalidInput  = errors.New("invalid input")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
