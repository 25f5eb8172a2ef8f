package host

import "errors"

var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("property not found")
	ErrForbidden   = errors.New("property belongs to another host")
	ErrHasBookings = errors.New("property has bookings")
)
