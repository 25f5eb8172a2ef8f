package domain

import "time"

type Property struct {
	ID       int64   `json:"id"`
	Title    string  `json:"title" validate:"required"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	City     string  `json:"city"`
	Country  string  `json:"country" validate:"required"`
	IsListed bool    `json:"is_listed"`
}

// PropertyDetails is the host-editable 1:1 extension of Property.
// PriceNight and LocalCurrency are nullable on purpose: a property without
// both on file must be excluded from price-bearing listings rather than
// shown with a zero price.
type PropertyDetails struct {
	PropertyID    int64     `json:"property_id"`
	HostID        int64     `json:"host_id"`
	Street        string    `json:"street,omitempty"`
	StreetNo      string    `json:"street_no,omitempty"`
	Description   string    `json:"description,omitempty"`
	Guests        int       `json:"guests"`
	Beds          int       `json:"beds"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	PriceNight    *float64  `json:"price_night,omitempty"`
	LocalCurrency *string   `json:"local_currency,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	ReviewsNo     int       `json:"reviews_no"`
	CreatedAt     time.Time `json:"created_at"`
}
