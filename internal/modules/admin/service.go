package admin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

var (
	ErrNotFound    = errors.New("property not found")
	ErrHasBookings = errors.New("property has bookings")
)

type PropertyAdmin interface {
	ListAll(ctx context.Context) ([]repository.AdminPropertyRow, error)
	GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error)
	Delete(ctx context.Context, id int64) error
}

type BookingGuard interface {
	ExistsForProperty(ctx context.Context, propertyID int64) (bool, error)
}

type WishlistCleaner interface {
	RemoveByProperty(ctx context.Context, propertyID int64) error
}

type Service struct {
	properties PropertyAdmin
	bookings   BookingGuard
	wishlists  WishlistCleaner
}

func NewService(properties PropertyAdmin, bookings BookingGuard, wishlists WishlistCleaner) *Service {
	return &Service{properties: properties, bookings: bookings, wishlists: wishlists}
}

func (s *Service) ListProperties(ctx context.Context) ([]repository.AdminPropertyRow, error) {
	return s.properties.ListAll(ctx)
}

// DeleteProperty removes any host's property. The no-bookings guard still
// applies: moderation takes a listing down via is_listed, it does not erase
// stay history.
func (s *Service) DeleteProperty(ctx context.Context, propertyID int64) error {
	if _, err := s.properties.GetDetails(ctx, propertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
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
