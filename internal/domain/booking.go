package domain

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID         int64         `json:"id"`
	PropertyID int64         `json:"property_id" validate:"required"`
	Email      string        `json:"email" validate:"required,email"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	Address    string        `json:"guest_address,omitempty"`
	City       string        `json:"guest_city,omitempty"`
	Country    string        `json:"guest_country,omitempty"`
	Phone      string        `json:"guest_phone,omitempty"`
	CheckIn    time.Time     `json:"check_in" validate:"required"`
	CheckOut   time.Time     `json:"check_out" validate:"required"`
	Guests     int           `json:"guests" validate:"gte=1"`
	Status     BookingStatus `json:"status"`
	// PINCode pairs with the booking id for unauthenticated guest lookup.
	// Four decimal digits, zero padded. Not a secret.
	PINCode       string    `json:"pin_code,omitempty"`
	PaymentID     *int64    `json:"payment_id,omitempty"`
	TotalAmount   float64   `json:"total_amount"`
	TotalCurrency string    `json:"total_currency"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
