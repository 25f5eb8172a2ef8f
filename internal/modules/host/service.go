package host

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

type Service struct {
	properties PropertyRepository
	bookings   BookingGuard
	wishlists  WishlistCleaner
}

func NewService(properties PropertyRepository, bookings BookingGuard, wishlists WishlistCleaner) *Service {
	return &Service{properties: properties, bookings: bookings, wishlists: wishlists}
}

type CreatePropertyRequest struct {
	Title         string   `json:"title" binding:"required"`
	Lat           float64  `json:"lat"`
	Lng           float64  `json:"lng"`
	City          string   `json:"city" binding:"required"`
	Country       string   `json:"country" binding:"required"`
	IsListed      bool     `json:"is_listed"`
	Street        string   `json:"street"`
	StreetNo      string   `json:"street_no"`
	Description   string   `json:"description"`
	Guests        int      `json:"guests" binding:"required,gte=1"`
	Beds          int      `json:"beds"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	PriceNight    *float64 `json:"price_night" binding:"omitempty,gt=0"`
	LocalCurrency *string  `json:"local_currency" binding:"omitempty,len=3"`
}

type UpdatePropertyRequest struct {
	Title    *string  `json:"title"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	City     *string  `json:"city"`
	Country  *string  `json:"country"`
	IsListed *bool    `json:"is_listed"`
}

type UpdateDetailsRequest struct {
	Street        *string  `json:"street"`
	StreetNo      *string  `json:"street_no"`
	Description   *string  `json:"description"`
	Guests        *int     `json:"guests" binding:"omitempty,gte=1"`
	Beds          *int     `json:"beds"`
	Bedrooms      *int     `json:"bedrooms"`
	Bathrooms     *int     `json:"bathrooms"`
	PriceNight    *float64 `json:"price_night" binding:"omitempty,gt=0"`
	LocalCurrency *string  `json:"local_currency" binding:"omitempty,len=3"`
}

// Create inserts the property and its details row in one go; the caller
// becomes the host. Price and currency may be left unset, the property then
// stays out of price-bearing listings until both are filled in.
func (s *Service) Create(ctx context.Context, hostID int64, req CreatePropertyRequest) (*domain.Property, error) {
	// A price without a currency (or the reverse) would make the listing
	// unconvertible; require both or neither.
	if (req.PriceNight == nil) != (req.LocalCurrency == nil) {
		return nil, ErrValidation
	}

	p := &domain.Property{
		Title:    req.Title,
		Lat:      req.Lat,
		Lng:      req.Lng,
		City:     req.City,
		Country:  req.Country,
		IsListed: req.IsListed,
	}
	if err := s.properties.Create(ctx, p); err != nil {
		return nil, err
	}

	d := &domain.PropertyDetails{
		PropertyID:    p.ID,
		HostID:        hostID,
		Street:        req.Street,
		StreetNo:      req.StreetNo,
		Description:   req.Description,
		Guests:        req.Guests,
		Beds:          req.Beds,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		PriceNight:    req.PriceNight,
		LocalCurrency: req.LocalCurrency,
	}
	if err := s.properties.CreateDetails(ctx, d); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, hostID int64) ([]repository.HostPropertyRow, error) {
	return s.properties.ListByHost(ctx, hostID)
}

// Update edits the property row after an ownership check.
func (s *Service) Update(ctx context.Context, hostID, propertyID int64, req UpdatePropertyRequest) error {
	if err := s.ownProperty(ctx, hostID, propertyID); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Lat != nil {
		fields["lat"] = *req.Lat
	}
	if req.Lng != nil {
		fields["lng"] = *req.Lng
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}
	if req.IsListed != nil {
		fields["is_listed"] = *req.IsListed
	}
	if len(fields) == 0 {
		return nil
	}
	return s.properties.UpdateFields(ctx, propertyID, fields)
}

// UpdateDetails edits the details row; setting a price requires a currency
// to already be on file or arrive in the same request.
func (s *Service) UpdateDetails(ctx context.Context, hostID, propertyID int64, req UpdateDetailsRequest) error {
	if err := s.ownProperty(ctx, hostID, propertyID); err != nil {
		return err
	}

	fields := map[string]any{}
	if req.Street != nil {
		fields["street"] = *req.Street
	}
	if req.StreetNo != nil {
		fields["street_no"] = *req.StreetNo
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Guests != nil {
		fields["guests"] = *req.Guests
	}
	if req.Beds != nil {
		fields["beds"] = *req.Beds
	}
	if req.Bedrooms != nil {
		fields["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		fields["bathrooms"] = *req.Bathrooms
	}
	if req.PriceNight != nil {
		fields["price_night"] = *req.PriceNight
	}
	if req.LocalCurrency != nil {
		fields["local_currency"] = *req.LocalCurrency
	}
	if len(fields) == 0 {
		return nil
	}

	if req.PriceNight != nil && req.LocalCurrency == nil {
		current, err := s.properties.GetDetails(ctx, propertyID)
		if err != nil {
			return err
		}
		if current.LocalCurrency == nil {
			return ErrValidation
		}
	}
	return s.properties.UpdateDetailsFields(ctx, propertyID, fields)
}

// Delete removes the property, refusing while any booking still references
// it. Wishlist entries are cleaned up; bookings are the guard, not a
// cascade.
func (s *Service) Delete(ctx context.Context, hostID, propertyID int64) error {
	if err := s.ownProperty(ctx, hostID, propertyID); err != nil {
		return err
	}

	booked, err := s.bookings.ExistsForProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if booked {
		return ErrHasBookings
	}

	if err := s.wishlists.RemoveByProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.properties.Delete(ctx, propertyID)
}

func (s *Service) ownProperty(ctx context.Context, hostID, propertyID int64) error {
	d, err := s.properties.GetDetails(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if d.HostID != hostID {
		return ErrForbidden
	}
	return nil
}
