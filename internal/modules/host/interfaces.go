package host

import (
	"context"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) error
	CreateDetails(ctx context.Context, d *domain.PropertyDetails) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error)
	ListByHost(ctx context.Context, hostID int64) ([]repository.HostPropertyRow, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	UpdateDetailsFields(ctx context.Context, propertyID int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
}

// BookingGuard blocks property deletion while bookings reference it.
type BookingGuard interface {
	ExistsForProperty(ctx context.Context, propertyID int64) (bool, error)
}

// WishlistCleaner removes dangling wishlist entries when a property goes away.
type WishlistCleaner interface {
	RemoveByProperty(ctx context.Context, propertyID int64) error
}
