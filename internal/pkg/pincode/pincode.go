// Package pincode generates the short confirmation codes guests use
// together with a booking id for unauthenticated lookup. The codes are not
// secrets and not cryptographically random; they only pair a person holding
// a confirmation email with the matching row.
package pincode

import (
	"fmt"
	"math/rand"
)

// New returns a four-digit, zero-padded decimal string ("0000".."9999").
func New() string {
	return fmt.Sprintf("%04d", rand.Intn(10000))
}
