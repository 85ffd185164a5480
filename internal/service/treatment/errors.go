package treatment

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("treatment record not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrForbidden       = errors.New("treatment record belongs to another user")
	ErrMissingFields   = errors.New("userId, treatmentName, beginDate and endDate are required")
	ErrInvalidStatus   = errors.New("status must be ongoing or end")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrInvalidPeriod   = errors.New("endDate must not be before beginDate")
	ErrInvalidInput    = errors.New("invalid input")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
