package booking

import "errors"

var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("booking not found")
	ErrNotAvailable = errors.New("property not available for the requested dates")
	ErrCannotCancel = errors.New("booking can no longer be cancelled")
)
