// Package validator wraps go-playground struct validation and adds the
// account policy checks that cannot be expressed as field tags.
package validator

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate runs tag-based struct validation and returns field→failed-tag
// pairs, or nil when the value is valid.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	for _, err := range err.(validator.ValidationErrors) {
		errors[err.Field()] = err.Tag()
	}
	return errors
}

const (
	minPasswordLen = 8
	maxPasswordLen = 50
)

// ValidatePassword enforces the account password policy: length bounds and
// no occurrence of the holder's own name. Returns one message per violation.
func ValidatePassword(password, firstName, lastName string) []string {
	var errs []string

	if len(password) < minPasswordLen {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters", minPasswordLen))
	}
	if len(password) > maxPasswordLen {
		errs = append(errs, fmt.Sprintf("Password exceeds %d characters", maxPasswordLen))
	}

	lower := strings.ToLower(password)
	if firstName != "" && strings.Contains(lower, strings.ToLower(firstName)) {
		errs = append(errs, "Password must not contain your first name")
	}
	if lastName != "" && strings.Contains(lower, strings.ToLower(lastName)) {
		errs = append(errs, "Password must not contain your last name")
	}

	return errs
}
