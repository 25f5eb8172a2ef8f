package user

import (
	"context"

	"stayhub/internal/domain"
	"stayhub/internal/modules/catalog"
	"stayhub/internal/repository"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]any) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	Delete(ctx context.Context, id int64) error
}

// BookingEmails re-keys a guest's bookings when their account email changes;
// bookings reference guests by email, not by user id.
type BookingEmails interface {
	UpdateEmail(ctx context.Context, oldEmail, newEmail string) error
}

// HostingGuard refuses account deletion while the user still hosts.
type HostingGuard interface {
	CountByHost(ctx context.Context, hostID int64) (int64, error)
}

type WishlistRepository interface {
	Exists(ctx context.Context, userID, propertyID int64) (bool, error)
	Add(ctx context.Context, userID, propertyID int64) error
	Remove(ctx context.Context, userID, propertyID int64) error
	ListProperties(ctx context.Context, userID int64) ([]repository.ListingRow, error)
}

// PriceConverter turns raw listing rows into site-currency listings; the
// catalog service provides it.
type PriceConverter interface {
	ConvertRows(ctx context.Context, rows []repository.ListingRow) []catalog.Listing
}
