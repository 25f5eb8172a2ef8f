package review

import "errors"

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("review not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrForbidden       = errors.New("not the author")
	ErrNotReviewable   = errors.New("booking cannot be reviewed")
	ErrAlreadyReviewed = errors.New("booking already reviewed")
)
