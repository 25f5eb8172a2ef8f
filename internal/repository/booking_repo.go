package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
	"stayhub/internal/pkg/dates"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	PropertyID    int64     `gorm:"column:property_id;index"`
	Email         string    `gorm:"column:email;index"`
	FirstName     string    `gorm:"column:first_name"`
	LastName      string    `gorm:"column:last_name"`
	Address       string    `gorm:"column:guest_address"`
	City          string    `gorm:"column:guest_city"`
	Country       string    `gorm:"column:guest_country"`
	Phone         string    `gorm:"column:guest_phone"`
	CheckIn       time.Time `gorm:"column:check_in"`
	CheckOut      time.Time `gorm:"column:check_out"`
	Guests        int       `gorm:"column:guests"`
	Status        string    `gorm:"column:status"`
	PINCode       string    `gorm:"column:pin_code"`
	PaymentID     *int64    `gorm:"column:payment_id"`
	TotalAmount   float64   `gorm:"column:total_amount"`
	TotalCurrency string    `gorm:"column:total_currency"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		Email:         m.Email,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Address:       m.Address,
		City:          m.City,
		Country:       m.Country,
		Phone:         m.Phone,
		CheckIn:       m.CheckIn,
		CheckOut:      m.CheckOut,
		Guests:        m.Guests,
		Status:        domain.BookingStatus(m.Status),
		PINCode:       m.PINCode,
		PaymentID:     m.PaymentID,
		TotalAmount:   m.TotalAmount,
		TotalCurrency: m.TotalCurrency,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		Email:         b.Email,
		FirstName:     b.FirstName,
		LastName:      b.LastName,
		Address:       b.Address,
		City:          b.City,
		Country:       b.Country,
		Phone:         b.Phone,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		Guests:        b.Guests,
		Status:        string(b.Status),
		PINCode:       b.PINCode,
		PaymentID:     b.PaymentID,
		TotalAmount:   b.TotalAmount,
		TotalCurrency: b.TotalCurrency,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// ActiveByProperty returns every booking for the property that still blocks
// dates, i.e. everything except cancelled. Pending, confirmed and completed
// all conflict.
func (r *BookingRepository) ActiveByProperty(ctx context.Context, propertyID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ? AND status <> ?", propertyID, string(domain.BookingCancelled)).
		Order("check_in").
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// RangesIntersecting returns the non-cancelled [check_in, check_out) pairs
// overlapping the given window, for the availability calendar.
func (r *BookingRepository) RangesIntersecting(ctx context.Context, propertyID int64, from, to time.Time) ([]dates.Range, error) {
	var rows []dates.Range
	q := `
SELECT check_in, check_out
FROM bookings
WHERE property_id = ?
  AND status <> ?
  AND check_in < ? AND ? < check_out
ORDER BY check_in`
	tx := r.db.WithContext(ctx).
		Raw(q, propertyID, string(domain.BookingCancelled), to, from).
		Scan(&rows)
	return rows, tx.Error
}

func (r *BookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := r.db.WithContext(ctx).Where("email = ?", email).Order("check_in").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// ListByHost returns every booking across the host's properties.
func (r *BookingRepository) ListByHost(ctx context.Context, hostID int64) ([]domain.Booking, error) {
	var ms []bookingModel
	q := `
SELECT b.*
FROM bookings b
JOIN property_details pd ON pd.property_id = b.property_id
WHERE pd.host_id = ?
ORDER BY b.check_in`
	tx := r.db.WithContext(ctx).Raw(q, hostID).Scan(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("id = ?", id).
		Update("status", string(status)).Error
}

// UpdateEmail re-keys a guest's bookings when the account email changes.
func (r *BookingRepository) UpdateEmail(ctx context.Context, oldEmail, newEmail string) error {
	return r.db.WithContext(ctx).Model(&bookingModel{}).Where("email = ?", oldEmail).
		Update("email", newEmail).Error
}

// ExistsForProperty reports whether any booking, in any status, references
// the property. Properties with booking history cannot be deleted.
func (r *BookingRepository) ExistsForProperty(ctx context.Context, propertyID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Where("property_id = ?", propertyID).Count(&cnt)
	return cnt > 0, tx.Error
}
