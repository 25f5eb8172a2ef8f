package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/modules/catalog"
	"stayhub/internal/pkg/validator"
)

type Service struct {
	users     UserRepository
	bookings  BookingEmails
	hosting   HostingGuard
	wishlists WishlistRepository
	converter PriceConverter
}

func NewService(users UserRepository, bookings BookingEmails, hosting HostingGuard, wishlists WishlistRepository, converter PriceConverter) *Service {
	return &Service{
		users:     users,
		bookings:  bookings,
		hosting:   hosting,
		wishlists: wishlists,
		converter: converter,
	}
}

type UpdateProfileRequest struct {
	Email       *string `json:"email" binding:"omitempty,email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	AvatarURL   *string `json:"avatar_url"`
	CountryCode *string `json:"country_code"`
	Language    *string `json:"language"`
	Currency    *string `json:"currency" binding:"omitempty,len=3"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

func (s *Service) Config(ctx context.Context, userID int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile patches the given fields. An email change also re-keys every
// booking made under the old address, so trips history follows the account.
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*domain.User, error) {
	u, err := s.Config(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if req.FirstName != nil {
		fields["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		fields["last_name"] = *req.LastName
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = *req.AvatarURL
	}
	if req.CountryCode != nil {
		fields["country_code"] = *req.CountryCode
	}
	if req.Language != nil {
		fields["language"] = *req.Language
	}
	if req.Currency != nil {
		fields["currency"] = strings.ToUpper(*req.Currency)
	}

	oldEmail := u.Email
	newEmail := ""
	if req.Email != nil {
		newEmail = strings.ToLower(strings.TrimSpace(*req.Email))
		if newEmail == "" {
			return nil, ErrValidation
		}
		if newEmail != oldEmail {
			fields["email"] = newEmail
		}
	}

	if len(fields) == 0 {
		return u, nil
	}

	if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if _, changed := fields["email"]; changed {
		if err := s.bookings.UpdateEmail(ctx, oldEmail, newEmail); err != nil {
			return nil, err
		}
	}

	return s.Config(ctx, userID)
}

// ChangePassword verifies the current password, applies the password policy
// and stores a fresh bcrypt hash.
func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	u, err := s.Config(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
		return ErrWrongPassword
	}
	if issues := validator.ValidatePassword(req.NewPassword, u.FirstName, u.LastName); len(issues) > 0 {
		return ErrValidation
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

// Delete removes the account. A user who still hosts properties must hand
// them off or delete them first.
func (s *Service) Delete(ctx context.Context, userID int64) error {
	cnt, err := s.hosting.CountByHost(ctx, userID)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return ErrStillHosting
	}
	return s.users.Delete(ctx, userID)
}

// ToggleWishlist flips the property's membership and reports the new state.
func (s *Service) ToggleWishlist(ctx context.Context, userID, propertyID int64) (bool, error) {
	on, err := s.wishlists.Exists(ctx, userID, propertyID)
	if err != nil {
		return false, err
	}
	if on {
		return false, s.wishlists.Remove(ctx, userID, propertyID)
	}
	return true, s.wishlists.Add(ctx, userID, propertyID)
}

func (s *Service) InWishlist(ctx context.Context, userID, propertyID int64) (bool, error) {
	return s.wishlists.Exists(ctx, userID, propertyID)
}

// Wishlist returns the saved properties with site-currency prices, filtered
// the same way the public catalog is.
func (s *Service) Wishlist(ctx context.Context, userID int64) ([]catalog.Listing, error) {
	rows, err := s.wishlists.ListProperties(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.converter.ConvertRows(ctx, rows), nil
}
