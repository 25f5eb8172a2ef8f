package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/dates"
)

// Mock repositories
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ActiveByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) RangesIntersecting(ctx context.Context, propertyID int64, from, to time.Time) ([]dates.Range, error) {
	args := m.Called(ctx, propertyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dates.Range), args.Error(1)
}

func (m *MockBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockPropertySource struct {
	mock.Mock
}

func (m *MockPropertySource) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertySource) GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropertyDetails), args.Error(1)
}

type MockPaymentRecorder struct {
	mock.Mock
}

func (m *MockPaymentRecorder) Create(ctx context.Context, p *domain.Payment) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 501
	}
	return args.Error(0)
}

func fixedNow(s string) func() time.Time {
	return func() time.Time { return day(s) }
}

func pricedDetails(price float64, currency string) *domain.PropertyDetails {
	return &domain.PropertyDetails{PriceNight: &price, LocalCurrency: &currency}
}

func newTestService() (*Service, *MockBookingRepository, *MockPropertySource, *MockPaymentRecorder) {
	bookings := new(MockBookingRepository)
	properties := new(MockPropertySource)
	payments := new(MockPaymentRecorder)
	svc := NewService(bookings, properties, payments, fixedNow("2026-06-01"))
	return svc, bookings, properties, payments
}

func TestIsAvailable_NoConflicts(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	bookings.On("ActiveByProperty", mock.Anything, int64(1)).
		Return([]domain.Booking{
			stay(1, domain.BookingConfirmed, "2026-07-01", "2026-07-05"),
		}, nil)

	// Back-to-back with an existing booking: checkout day is free.
	free, err := svc.IsAvailable(context.Background(), 1, day("2026-07-05"), day("2026-07-08"))
	assert.NoError(t, err)
	assert.True(t, free)
}

func TestIsAvailable_Overlap(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	bookings.On("ActiveByProperty", mock.Anything, int64(1)).
		Return([]domain.Booking{
			stay(1, domain.BookingConfirmed, "2026-07-01", "2026-07-05"),
		}, nil)

	free, err := svc.IsAvailable(context.Background(), 1, day("2026-07-04"), day("2026-07-06"))
	assert.NoError(t, err)
	assert.False(t, free)
}

func TestIsAvailable_ZeroNights(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.IsAvailable(context.Background(), 1, day("2026-07-04"), day("2026-07-04"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_Success(t *testing.T) {
	svc, bookings, properties, payments := newTestService()

	properties.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{ID: 1}, nil)
	properties.On("GetDetails", mock.Anything, int64(1)).Return(pricedDetails(100, "USD"), nil)
	bookings.On("ActiveByProperty", mock.Anything, int64(1)).Return([]domain.Booking{}, nil)
	payments.On("Create", mock.Anything, mock.AnythingOfType("*domain.Payment")).Return(nil)
	bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)

	res, err := svc.Create(context.Background(), CreateBookingRequest{
		PropertyID: 1,
		Email:      "guest@example.com",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		CheckIn:    "2026-07-01",
		CheckOut:   "2026-07-04",
		Guests:     2,
		CardNumber: "4111111111111111",
		CardHolder: "ADA LOVELACE",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(999), res.ID)
	assert.Equal(t, "confirmed", res.Status)
	assert.Len(t, res.PINCode, 4)
	assert.Equal(t, 300.0, res.TotalAmount)
	assert.Equal(t, "USD", res.TotalCurrency)

	payment := payments.Calls[0].Arguments.Get(1).(*domain.Payment)
	assert.Equal(t, "1111", payment.CardLast4)
	assert.NotEmpty(t, payment.Reference)

	bookings.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*domain.Booking"))
}

func TestCreate_Conflict(t *testing.T) {
	svc, bookings, properties, payments := newTestService()

	properties.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{ID: 1}, nil)
	properties.On("GetDetails", mock.Anything, int64(1)).Return(pricedDetails(100, "USD"), nil)
	bookings.On("ActiveByProperty", mock.Anything, int64(1)).
		Return([]domain.Booking{
			stay(5, domain.BookingConfirmed, "2026-07-02", "2026-07-06"),
		}, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		PropertyID: 1,
		Email:      "guest@example.com",
		CheckIn:    "2026-07-01",
		CheckOut:   "2026-07-04",
		Guests:     1,
		CardNumber: "4111111111111111",
		CardHolder: "A",
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
	payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_CancelledBookingFreesRange(t *testing.T) {
	svc, bookings, properties, payments := newTestService()

	properties.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{ID: 1}, nil)
	properties.On("GetDetails", mock.Anything, int64(1)).Return(pricedDetails(100, "USD"), nil)
	// Repository filters cancelled rows out of the active set.
	bookings.On("ActiveByProperty", mock.Anything, int64(1)).Return([]domain.Booking{}, nil)
	payments.On("Create", mock.Anything, mock.Anything).Return(nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	res, err := svc.Create(context.Background(), CreateBookingRequest{
		PropertyID: 1,
		Email:      "guest@example.com",
		CheckIn:    "2026-07-02",
		CheckOut:   "2026-07-05",
		Guests:     1,
		CardNumber: "4111111111111111",
		CardHolder: "A",
	})

	assert.NoError(t, err)
	assert.NotNil(t, res)
}

func TestCreate_UnpricedProperty(t *testing.T) {
	svc, _, properties, _ := newTestService()

	properties.On("GetByID", mock.Anything, int64(1)).Return(&domain.Property{ID: 1}, nil)
	properties.On("GetDetails", mock.Anything, int64(1)).Return(&domain.PropertyDetails{}, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		PropertyID: 1,
		Email:      "guest@example.com",
		CheckIn:    "2026-07-01",
		CheckOut:   "2026-07-04",
		Guests:     1,
		CardNumber: "4111111111111111",
		CardHolder: "A",
	})

	assert.Error(t, err)
}

func TestCreate_PropertyMissing(t *testing.T) {
	svc, _, properties, _ := newTestService()

	properties.On("GetByID", mock.Anything, int64(7)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		PropertyID: 7,
		Email:      "guest@example.com",
		CheckIn:    "2026-07-01",
		CheckOut:   "2026-07-04",
		Guests:     1,
		CardNumber: "4111111111111111",
		CardHolder: "A",
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreate_InvertedRange(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		PropertyID: 1,
		CheckIn:    "2026-07-04",
		CheckOut:   "2026-07-01",
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestLookup_WrongPIN(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	b := stay(1, domain.BookingConfirmed, "2026-07-01", "2026-07-04")
	b.PINCode = "0421"
	bookings.On("GetByID", mock.Anything, int64(1)).Return(&b, nil)

	_, err := svc.Lookup(context.Background(), 1, "9999")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := svc.Lookup(context.Background(), 1, "0421")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
}

func TestCancel_Confirmed(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	b := stay(1, domain.BookingConfirmed, "2026-07-01", "2026-07-04")
	b.PINCode = "0421"
	bookings.On("GetByID", mock.Anything, int64(1)).Return(&b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCancelled).Return(nil)

	got, err := svc.Cancel(context.Background(), 1, "0421")
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	bookings.AssertCalled(t, "UpdateStatus", mock.Anything, int64(1), domain.BookingCancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	b := stay(1, domain.BookingCancelled, "2026-07-01", "2026-07-04")
	b.PINCode = "0421"
	bookings.On("GetByID", mock.Anything, int64(1)).Return(&b, nil)

	_, err := svc.Cancel(context.Background(), 1, "0421")
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_OnOrAfterCheckout(t *testing.T) {
	// Cancellation must stop on the check-out day itself, not just after it.
	for _, today := range []string{"2026-07-04", "2026-07-10"} {
		bookings := new(MockBookingRepository)
		svc := NewService(bookings, new(MockPropertySource), new(MockPaymentRecorder), fixedNow(today))

		b := stay(1, domain.BookingConfirmed, "2026-07-01", "2026-07-04")
		b.PINCode = "0421"
		bookings.On("GetByID", mock.Anything, int64(1)).Return(&b, nil)

		_, err := svc.Cancel(context.Background(), 1, "0421")
		assert.ErrorIs(t, err, ErrCannotCancel, "today=%s", today)
		bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestCancel_DayBeforeCheckout(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := NewService(bookings, new(MockPropertySource), new(MockPaymentRecorder), fixedNow("2026-07-03"))

	b := stay(1, domain.BookingConfirmed, "2026-07-01", "2026-07-04")
	b.PINCode = "0421"
	bookings.On("GetByID", mock.Anything, int64(1)).Return(&b, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCancelled).Return(nil)

	got, err := svc.Cancel(context.Background(), 1, "0421")
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
}

func TestBookedRanges(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	expected := []dates.Range{{CheckIn: day("2026-07-03"), CheckOut: day("2026-07-06")}}
	bookings.On("RangesIntersecting", mock.Anything, int64(1), day("2026-07-01"), day("2026-08-01")).
		Return(expected, nil)

	got, err := svc.BookedRanges(context.Background(), 1, "2026-07")
	assert.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestBookedRanges_BadMonth(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.BookedRanges(context.Background(), 1, "July 2026")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGuestBuckets(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	bookings.On("ListByEmail", mock.Anything, "guest@example.com").
		Return([]domain.Booking{
			stay(1, domain.BookingConfirmed, "2026-06-01", "2026-06-04"), // arriving today
			stay(2, domain.BookingConfirmed, "2026-06-20", "2026-06-24"), // upcoming
			stay(3, domain.BookingConfirmed, "2026-05-01", "2026-05-04"), // settled, dropped
		}, nil)

	b, err := svc.GuestBuckets(context.Background(), "guest@example.com")
	assert.NoError(t, err)
	assert.Len(t, b.Arriving, 1)
	assert.Len(t, b.Upcoming, 1)
	assert.Empty(t, b.Current)
}

func TestGuestBuckets_RepoError(t *testing.T) {
	svc, bookings, _, _ := newTestService()

	bookings.On("ListByEmail", mock.Anything, "guest@example.com").
		Return(nil, errors.New("db down"))

	_, err := svc.GuestBuckets(context.Background(), "guest@example.com")
	assert.Error(t, err)
}
