package review

import (
	"context"

	"stayhub/internal/domain"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	Delete(ctx context.Context, id int64) error
	RatingStats(ctx context.Context, propertyID int64) (float64, int, error)
}

// BookingSource checks that the review's booking exists and belongs to the
// reviewer.
type BookingSource interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// RatingSink receives the recomputed property aggregate after every write.
type RatingSink interface {
	SetRating(ctx context.Context, propertyID int64, rating *float64, reviewsNo int) error
}
