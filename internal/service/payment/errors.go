package payment

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("payment not found")
	ErrUserNotFound  = errors.New("no user with that email")
	ErrForbidden     = errors.New("payment belongs to another user")
	ErrMissingFields = errors.New("email, doctorName, appointmentDate, appointmentTime and method are required")
	ErrInvalidMethod = errors.New("method must be card, slip or cash")
	ErrInvalidFee    = errors.New("consultantFee must not be negative")
	ErrSlipRequired  = errors.New("a payment slip is required for slip payments")
	ErrNotPending    = errors.New("only pending payments can be approved or rejected")
	ErrSlipNotFound  = errors.New("slip not found")
	ErrInvalidInput  = errors.New("invalid input")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
