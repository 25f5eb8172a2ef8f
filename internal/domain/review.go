package domain

import "time"

type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	PropertyID int64     `json:"property_id"`
	UserID     int64     `json:"user_id"`
	Rating     int       `json:"rating" validate:"required,gte=1,lte=5"`
	Title      string    `json:"title,omitempty"`
	Body       string    `json:"body,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
