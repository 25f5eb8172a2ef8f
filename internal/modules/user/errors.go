package user

import "errors"

var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("user not found")
	ErrEmailTaken    = errors.New("email already in use")
	ErrWrongPassword = errors.New("current password does not match")
	ErrStillHosting  = errors.New("account still hosts properties")
)
