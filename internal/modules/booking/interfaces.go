package booking

import (
	"context"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/dates"
)

// BookingRepository is the persistence surface the service needs; the
// concrete implementation lives in internal/repository.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ActiveByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error)
	RangesIntersecting(ctx context.Context, propertyID int64, from, to time.Time) ([]dates.Range, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	ListByHost(ctx context.Context, hostID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// PropertySource resolves the property rows a booking refers to.
type PropertySource interface {
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error)
}

// PaymentRecorder stores the payment taken alongside a new booking.
type PaymentRecorder interface {
	Create(ctx context.Context, p *domain.Payment) error
}
