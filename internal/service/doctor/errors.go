package doctor

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("doctor not found")
	ErrMissingFields  = errors.New("name and specialization are required")
	ErrInvalidFee     = errors.New("fee must not be negative")
	ErrInvalidStatus  = errors.New("status must be available, unavailable or on-leave")
	ErrInvalidWindow  = errors.New("visibility window end must not be before its start")
	ErrInvalidRequest = errors.New("date and time are required")
	ErrInvalidInput   = errors.New("invalid input")
)

// invalidInput marks a parse failure as a validation error while keeping
// the underlying cause matchable.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
