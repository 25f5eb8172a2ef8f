package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/dates"
	"stayhub/internal/pkg/pincode"
	"stayhub/internal/pricing"
)

type Service struct {
	bookings   BookingRepository
	properties PropertySource
	payments   PaymentRecorder
	now        func() time.Time
}

func NewService(bookings BookingRepository, properties PropertySource, payments PaymentRecorder, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		bookings:   bookings,
		properties: properties,
		payments:   payments,
		now:        now,
	}
}

// IsAvailable reports whether the property is free for [checkIn, checkOut).
// Zero-night and inverted ranges are rejected before any query. A booked
// range is a boolean outcome, not an error: double-booking attempts are
// expected traffic.
func (s *Service) IsAvailable(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (bool, error) {
	if dates.NightsBetween(checkIn, checkOut) <= 0 {
		return false, ErrValidation
	}

	existing, err := s.bookings.ActiveByProperty(ctx, propertyID)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if dates.RangesOverlap(b.CheckIn, b.CheckOut, checkIn, checkOut) {
			return false, nil
		}
	}
	return true, nil
}

// BookedRanges returns every non-cancelled range touching the given month
// ("2006-01"), for the guest-facing calendar. The slice is rebuilt on every
// call; nothing is retained between calls.
func (s *Service) BookedRanges(ctx context.Context, propertyID int64, month string) ([]dates.Range, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, ErrValidation
	}
	end := start.AddDate(0, 1, 0)
	return s.bookings.RangesIntersecting(ctx, propertyID, start, end)
}

// Quote prices a stay in the property's local currency. The total is
// nights × nightly price, rounded once at the end.
func (s *Service) Quote(ctx context.Context, propertyID int64, checkIn, checkOut time.Time) (pricing.Quote, error) {
	nights := dates.NightsBetween(checkIn, checkOut)
	if nights <= 0 {
		return pricing.Quote{}, ErrValidation
	}

	details, err := s.properties.GetDetails(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pricing.Quote{}, ErrNotFound
		}
		return pricing.Quote{}, err
	}

	return pricing.QuoteTotal(nights, details.PriceNight, details.LocalCurrency)
}

// Create reserves the property for the guest: validates the range, re-checks
// availability, prices the stay server-side, records the payment and inserts
// the booking as confirmed with a fresh lookup PIN.
//
// Two near-simultaneous requests can both pass the availability check; the
// store's overlap constraint is the backstop, and a constraint violation is
// reported as a plain availability conflict.
func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*CreateBookingResponse, error) {
	checkIn, checkOut, err := parseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	if _, err := s.properties.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	quote, err := s.Quote(ctx, req.PropertyID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	free, err := s.IsAvailable(ctx, req.PropertyID, checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrNotAvailable
	}

	payment := &domain.Payment{
		Reference:  uuid.NewString(),
		Email:      req.Email,
		CardHolder: req.CardHolder,
		CardLast4:  last4(req.CardNumber),
		Amount:     quote.Amount,
		Currency:   quote.Currency,
		PaidAt:     s.now(),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		PropertyID:    req.PropertyID,
		Email:         req.Email,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Address:       req.Address,
		City:          req.City,
		Country:       req.Country,
		Phone:         req.Phone,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        req.Guests,
		Status:        domain.BookingConfirmed,
		PINCode:       pincode.New(),
		PaymentID:     &payment.ID,
		TotalAmount:   quote.Amount,
		TotalCurrency: quote.Currency,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23P01") {
			return nil, ErrNotAvailable
		}
		return nil, err
	}

	return &CreateBookingResponse{
		ID:            b.ID,
		PINCode:       b.PINCode,
		Status:        string(b.Status),
		TotalAmount:   b.TotalAmount,
		TotalCurrency: b.TotalCurrency,
	}, nil
}

// Lookup fetches a booking by id + PIN. A wrong PIN is indistinguishable
// from a missing booking so ids cannot be probed.
func (s *Service) Lookup(ctx context.Context, id int64, pin string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if pin == "" || b.PINCode != pin {
		return nil, ErrNotFound
	}
	return b, nil
}

// Cancel moves a pending or confirmed booking to cancelled, once, and only
// strictly before the check-out date. The check-out day itself is too late:
// the stay is effectively over. Cancelled and completed are terminal.
func (s *Service) Cancel(ctx context.Context, id int64, pin string) (*domain.Booking, error) {
	b, err := s.Lookup(ctx, id, pin)
	if err != nil {
		return nil, err
	}

	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, ErrCannotCancel
	}
	if dates.DaysUntil(s.now(), b.CheckOut) <= 0 {
		return nil, ErrCannotCancel
	}

	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingCancelled); err != nil {
		return nil, err
	}
	b.Status = domain.BookingCancelled
	return b, nil
}

// GuestBuckets partitions the guest's bookings (keyed by email) for the
// trips dashboard.
func (s *Service) GuestBuckets(ctx context.Context, email string) (Buckets, error) {
	all, err := s.bookings.ListByEmail(ctx, email)
	if err != nil {
		return Buckets{}, err
	}
	return Partition(all, s.now()), nil
}

// HostBuckets partitions every booking across the host's properties for the
// hosting dashboard.
func (s *Service) HostBuckets(ctx context.Context, hostID int64) (Buckets, error) {
	all, err := s.bookings.ListByHost(ctx, hostID)
	if err != nil {
		return Buckets{}, err
	}
	return Partition(all, s.now()), nil
}

func parseRange(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := time.Parse("2006-01-02", checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	out, err := time.Parse("2006-01-02", checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if !out.After(in) {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return in, out, nil
}

func last4(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}
