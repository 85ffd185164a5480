package bookingmessage

import "errors"

var (
	ErrNotFound  = errors.New("booking message not found")
	ErrForbidden = errors.New("booking message belongs to another user")
)
