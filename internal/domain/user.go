package domain

import "time"

type UserRole string

const (
	RoleGuest UserRole = "guest"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email" validate:"required,email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	AvatarURL    string   `json:"avatar_url,omitempty"`
	CountryCode  string   `json:"country_code,omitempty"`
	Language     string   `json:"language,omitempty"`
	// Currency is the guest-facing display currency preference, not the
	// site accounting currency.
	Currency  string    `json:"currency,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
