package report

import "errors"

var (
	ErrNoData      = errors.New("no matching records")
	ErrInvalidDate = errors.New("invalid date")
)
