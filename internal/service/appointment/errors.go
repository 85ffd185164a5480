package appointment

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrForbidden         = errors.New("appointment belongs to another user")
	ErrMissingFields     = errors.New("doctorId, patientName, patientPhone, date and time are required")
	ErrDoctorUnavailable = errors.New("doctor is not available at the requested date and time")
	ErrAlreadyCancelled  = errors.New("appointment is already cancelled")
	ErrInvalidStatus     = errors.New("status must be Pending, Approved or Cancelled")
	ErrInvalidInput      = errors.New("invalid input")
)

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
