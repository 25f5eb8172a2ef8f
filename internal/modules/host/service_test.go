package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/repository"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	if p != nil {
		p.ID = 42
	}
	return args.Error(0)
}

func (m *MockPropertyRepository) CreateDetails(ctx context.Context, d *domain.PropertyDetails) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropertyDetails), args.Error(1)
}

func (m *MockPropertyRepository) ListByHost(ctx context.Context, hostID int64) ([]repository.HostPropertyRow, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.HostPropertyRow), args.Error(1)
}

func (m *MockPropertyRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockPropertyRepository) UpdateDetailsFields(ctx context.Context, propertyID int64, fields map[string]any) error {
	args := m.Called(ctx, propertyID, fields)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingGuard struct {
	mock.Mock
}

func (m *MockBookingGuard) ExistsForProperty(ctx context.Context, propertyID int64) (bool, error) {
	args := m.Called(ctx, propertyID)
	return args.Bool(0), args.Error(1)
}

type MockWishlistCleaner struct {
	mock.Mock
}

func (m *MockWishlistCleaner) RemoveByProperty(ctx context.Context, propertyID int64) error {
	args := m.Called(ctx, propertyID)
	return args.Error(0)
}

func f(v float64) *float64 { return &v }
func str(v string) *string { return &v }

func ownDetails(hostID int64) *domain.PropertyDetails {
	return &domain.PropertyDetails{PropertyID: 5, HostID: hostID}
}

func TestCreate_PriceWithoutCurrency(t *testing.T) {
	svc := NewService(new(MockPropertyRepository), new(MockBookingGuard), new(MockWishlistCleaner))

	_, err := svc.Create(context.Background(), 1, CreatePropertyRequest{
		Title: "Chalet Edelweiss", City: "Grindelwald", Country: "Switzerland",
		Guests: 4, PriceNight: f(410),
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_InsertsPropertyAndDetails(t *testing.T) {
	properties := new(MockPropertyRepository)
	svc := NewService(properties, new(MockBookingGuard), new(MockWishlistCleaner))

	properties.On("Create", mock.Anything, mock.AnythingOfType("*domain.Property")).Return(nil)
	properties.On("CreateDetails", mock.Anything, mock.AnythingOfType("*domain.PropertyDetails")).Return(nil)

	p, err := svc.Create(context.Background(), 7, CreatePropertyRequest{
		Title: "Aurora Cottage", City: "Varmahlíð", Country: "Iceland",
		Guests: 2, PriceNight: f(95), LocalCurrency: str("ISK"),
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), p.ID)

	details := properties.Calls[1].Arguments.Get(1).(*domain.PropertyDetails)
	assert.Equal(t, int64(42), details.PropertyID)
	assert.Equal(t, int64(7), details.HostID)
}

func TestUpdate_OwnershipEnforced(t *testing.T) {
	properties := new(MockPropertyRepository)
	svc := NewService(properties, new(MockBookingGuard), new(MockWishlistCleaner))

	properties.On("GetDetails", mock.Anything, int64(5)).Return(ownDetails(2), nil)

	title := "renamed"
	err := svc.Update(context.Background(), 1, 5, UpdatePropertyRequest{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateDetails_PriceNeedsCurrencyOnFile(t *testing.T) {
	properties := new(MockPropertyRepository)
	svc := NewService(properties, new(MockBookingGuard), new(MockWishlistCleaner))

	// Ownership check and the currency re-read hit the same call.
	properties.On("GetDetails", mock.Anything, int64(5)).Return(ownDetails(1), nil)

	err := svc.UpdateDetails(context.Background(), 1, 5, UpdateDetailsRequest{PriceNight: f(120)})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateDetails_PriceAndCurrencyTogether(t *testing.T) {
	properties := new(MockPropertyRepository)
	svc := NewService(properties, new(MockBookingGuard), new(MockWishlistCleaner))

	properties.On("GetDetails", mock.Anything, int64(5)).Return(ownDetails(1), nil)
	properties.On("UpdateDetailsFields", mock.Anything, int64(5),
		map[string]any{"price_night": 120.0, "local_currency": "CHF"}).Return(nil)

	err := svc.UpdateDetails(context.Background(), 1, 5, UpdateDetailsRequest{
		PriceNight: f(120), LocalCurrency: str("CHF"),
	})
	assert.NoError(t, err)
}

func TestDelete_BlockedByBookings(t *testing.T) {
	properties := new(MockPropertyRepository)
	bookings := new(MockBookingGuard)
	svc := NewService(properties, bookings, new(MockWishlistCleaner))

	properties.On("GetDetails", mock.Anything, int64(5)).Return(ownDetails(1), nil)
	bookings.On("ExistsForProperty", mock.Anything, int64(5)).Return(true, nil)

	err := svc.Delete(context.Background(), 1, 5)
	assert.ErrorIs(t, err, ErrHasBookings)
	properties.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDelete_CleansWishlist(t *testing.T) {
	properties := new(MockPropertyRepository)
	bookings := new(MockBookingGuard)
	wishlists := new(MockWishlistCleaner)
	svc := NewService(properties, bookings, wishlists)

	properties.On("GetDetails", mock.Anything, int64(5)).Return(ownDetails(1), nil)
	bookings.On("ExistsForProperty", mock.Anything, int64(5)).Return(false, nil)
	wishlists.On("RemoveByProperty", mock.Anything, int64(5)).Return(nil)
	properties.On("Delete", mock.Anything, int64(5)).Return(nil)

	err := svc.Delete(context.Background(), 1, 5)
	assert.NoError(t, err)
	wishlists.AssertCalled(t, "RemoveByProperty", mock.Anything, int64(5))
}

func TestDelete_NotFound(t *testing.T) {
	properties := new(MockPropertyRepository)
	svc := NewService(properties, new(MockBookingGuard), new(MockWishlistCleaner))

	properties.On("GetDetails", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 1, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
