package domain

import "time"

type WishlistItem struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	PropertyID int64     `json:"property_id"`
	CreatedAt  time.Time `json:"created_at"`
}
