package domain

import "time"

// Payment records that a charge was taken for a booking. The platform is not
// a processor: only the holder name and the last four card digits survive
// the request.
type Payment struct {
	ID         int64     `json:"id"`
	Reference  string    `json:"reference"`
	Email      string    `json:"email"`
	CardHolder string    `json:"card_holder"`
	CardLast4  string    `json:"card_last4"`
	Amount     float64   `json:"amount"`
	Currency   string    `json:"currency"`
	PaidAt     time.Time `json:"paid_at"`
}
