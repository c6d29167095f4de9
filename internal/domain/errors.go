package domain

import "errors"

var (
	ErrTicketNotFound       = errors.New("ticket not found")
	ErrValidation           = errors.New("validation failed")
	ErrGeneratorUnavailable = errors.New("generator unavailable")
)
