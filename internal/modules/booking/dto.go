package booking

import "stayhub/internal/pkg/dates"

// CreateBookingRequest carries the guest's reservation form. Dates travel as
// YYYY-MM-DD strings and are parsed at UTC midnight.
type CreateBookingRequest struct {
	PropertyID int64  `json:"property_id" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Address    string `json:"guest_address"`
	City       string `json:"guest_city"`
	Country    string `json:"guest_country"`
	Phone      string `json:"guest_phone"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Guests     int    `json:"guests" binding:"required,gte=1"`
	CardNumber string `json:"card_number" binding:"required"`
	CardHolder string `json:"card_holder" binding:"required"`
}

// CreateBookingResponse returns the id/PIN pair the guest needs for
// self-service lookup, plus the charged total.
type CreateBookingResponse struct {
	ID            int64   `json:"id"`
	PINCode       string  `json:"pin_code"`
	Status        string  `json:"status"`
	TotalAmount   float64 `json:"total_amount"`
	TotalCurrency string  `json:"total_currency"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type BookedRangesResponse struct {
	PropertyID int64         `json:"property_id"`
	Month      string        `json:"month"`
	Booked     []dates.Range `json:"booked"`
}
