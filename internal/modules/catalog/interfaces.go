package catalog

import (
	"context"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

// PropertyCatalog is the read surface the public catalog serves from.
type PropertyCatalog interface {
	ListListed(ctx context.Context) ([]repository.ListingRow, error)
	Search(ctx context.Context, country, city string, guests int, checkIn, checkOut time.Time, withDates bool) ([]repository.ListingRow, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error)
}

// ReviewSource feeds the property review feed.
type ReviewSource interface {
	ListByProperty(ctx context.Context, propertyID int64) ([]repository.PropertyReviewRow, error)
}

// UserSource resolves the reviewer mini-profile for /misc/users/:id.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// RateSource converts host-local prices into the site currency.
type RateSource interface {
	BaseCurrency() string
	GetRate(ctx context.Context, target string) (float64, error)
	PrimeRates(ctx context.Context, targets []string) error
}
