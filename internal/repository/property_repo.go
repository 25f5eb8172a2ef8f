package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID       int64   `gorm:"column:id;primaryKey"`
	Title    string  `gorm:"column:title"`
	Lat      float64 `gorm:"column:lat"`
	Lng      float64 `gorm:"column:lng"`
	City     string  `gorm:"column:city"`
	Country  string  `gorm:"column:country"`
	IsListed bool    `gorm:"column:is_listed"`
}

func (propertyModel) TableName() string { return "properties" }

type propertyDetailsModel struct {
	PropertyID    int64     `gorm:"column:property_id;primaryKey"`
	HostID        int64     `gorm:"column:host_id;index"`
	Street        string    `gorm:"column:street"`
	StreetNo      string    `gorm:"column:street_no"`
	Description   string    `gorm:"column:description"`
	Guests        int       `gorm:"column:guests"`
	Beds          int       `gorm:"column:beds"`
	Bedrooms      int       `gorm:"column:bedrooms"`
	Bathrooms     int       `gorm:"column:bathrooms"`
	PriceNight    *float64  `gorm:"column:price_night"`
	LocalCurrency *string   `gorm:"column:local_currency"`
	Rating        *float64  `gorm:"column:rating"`
	ReviewsNo     int       `gorm:"column:reviews_no"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (propertyDetailsModel) TableName() string { return "property_details" }

func toDomainProperty(m propertyModel) *domain.Property {
	return &domain.Property{
		ID:       m.ID,
		Title:    m.Title,
		Lat:      m.Lat,
		Lng:      m.Lng,
		City:     m.City,
		Country:  m.Country,
		IsListed: m.IsListed,
	}
}

func toDomainDetails(m propertyDetailsModel) *domain.PropertyDetails {
	return &domain.PropertyDetails{
		PropertyID:    m.PropertyID,
		HostID:        m.HostID,
		Street:        m.Street,
		StreetNo:      m.StreetNo,
		Description:   m.Description,
		Guests:        m.Guests,
		Beds:          m.Beds,
		Bedrooms:      m.Bedrooms,
		Bathrooms:     m.Bathrooms,
		PriceNight:    m.PriceNight,
		LocalCurrency: m.LocalCurrency,
		Rating:        m.Rating,
		ReviewsNo:     m.ReviewsNo,
		CreatedAt:     m.CreatedAt,
	}
}

// ListingRow is the flattened property+details projection served by the
// public catalog, wishlist and search surfaces. Prices stay in the host's
// local currency here; conversion happens in the service layer.
type ListingRow struct {
	ID            int64    `gorm:"column:id" json:"id"`
	Title         string   `gorm:"column:title" json:"title"`
	Lat           float64  `gorm:"column:lat" json:"lat"`
	Lng           float64  `gorm:"column:lng" json:"lng"`
	City          string   `gorm:"column:city" json:"city"`
	Country       string   `gorm:"column:country" json:"country"`
	Rating        *float64 `gorm:"column:rating" json:"rating,omitempty"`
	ReviewsNo     int      `gorm:"column:reviews_no" json:"reviews_no"`
	PriceNight    *float64 `gorm:"column:price_night" json:"price_night_local,omitempty"`
	LocalCurrency *string  `gorm:"column:local_currency" json:"local_currency,omitempty"`
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := propertyModel{
		Title:    p.Title,
		Lat:      p.Lat,
		Lng:      p.Lng,
		City:     p.City,
		Country:  p.Country,
		IsListed: p.IsListed,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	p.ID = m.ID
	return nil
}

func (r *PropertyRepository) CreateDetails(ctx context.Context, d *domain.PropertyDetails) error {
	m := propertyDetailsModel{
		PropertyID:    d.PropertyID,
		HostID:        d.HostID,
		Street:        d.Street,
		StreetNo:      d.StreetNo,
		Description:   d.Description,
		Guests:        d.Guests,
		Beds:          d.Beds,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		PriceNight:    d.PriceNight,
		LocalCurrency: d.LocalCurrency,
		CreatedAt:     d.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) GetDetails(ctx context.Context, propertyID int64) (*domain.PropertyDetails, error) {
	var m propertyDetailsModel
	tx := r.db.WithContext(ctx).Where("property_id = ?", propertyID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainDetails(m), nil
}

func (r *PropertyRepository) ListListed(ctx context.Context) ([]ListingRow, error) {
	var rows []ListingRow
	q := `
SELECT p.id, p.title, p.lat, p.lng, p.city, p.country,
       pd.rating, pd.reviews_no, pd.price_night, pd.local_currency
FROM properties p
JOIN property_details pd ON pd.property_id = p.id
WHERE p.is_listed = ?
ORDER BY p.id`
	tx := r.db.WithContext(ctx).Raw(q, true).Scan(&rows)
	return rows, tx.Error
}

// Search filters listed properties by location and capacity and, when a date
// range is given, excludes every property with a conflicting non-cancelled
// booking via a half-open overlap subquery.
func (r *PropertyRepository) Search(ctx context.Context, country, city string, guests int, checkIn, checkOut time.Time, withDates bool) ([]ListingRow, error) {
	var rows []ListingRow

	base := `
SELECT p.id, p.title, p.lat, p.lng, p.city, p.country,
       pd.rating, pd.reviews_no, pd.price_night, pd.local_currency
FROM properties p
JOIN property_details pd ON pd.property_id = p.id
WHERE p.is_listed = ? AND (p.country = ? OR p.city = ?) AND pd.guests >= ?`

	if !withDates {
		tx := r.db.WithContext(ctx).Raw(base+" ORDER BY p.id", true, country, city, guests).Scan(&rows)
		return rows, tx.Error
	}

	q := base + `
  AND NOT EXISTS (
    SELECT 1 FROM bookings b
    WHERE b.property_id = p.id
      AND b.status <> ?
      AND b.check_in < ? AND ? < b.check_out
  )
ORDER BY p.id`
	tx := r.db.WithContext(ctx).
		Raw(q, true, country, city, guests, string(domain.BookingCancelled), checkOut, checkIn).
		Scan(&rows)
	return rows, tx.Error
}

// HostPropertyRow backs the host dashboard property list.
type HostPropertyRow struct {
	ID       int64  `gorm:"column:id" json:"id"`
	Title    string `gorm:"column:title" json:"title"`
	City     string `gorm:"column:city" json:"city"`
	Country  string `gorm:"column:country" json:"country"`
	IsListed bool   `gorm:"column:is_listed" json:"is_listed"`
}

func (r *PropertyRepository) ListByHost(ctx context.Context, hostID int64) ([]HostPropertyRow, error) {
	var rows []HostPropertyRow
	q := `
SELECT p.id, p.title, p.city, p.country, p.is_listed
FROM properties p
JOIN property_details pd ON pd.property_id = p.id
WHERE pd.host_id = ?
ORDER BY p.id`
	tx := r.db.WithContext(ctx).Raw(q, hostID).Scan(&rows)
	return rows, tx.Error
}

// AdminPropertyRow is the moderation view: every property regardless of
// listing state, with its host attached.
type AdminPropertyRow struct {
	ID       int64  `gorm:"column:id" json:"id"`
	Title    string `gorm:"column:title" json:"title"`
	City     string `gorm:"column:city" json:"city"`
	Country  string `gorm:"column:country" json:"country"`
	IsListed bool   `gorm:"column:is_listed" json:"is_listed"`
	HostID   int64  `gorm:"column:host_id" json:"host_id"`
}

func (r *PropertyRepository) ListAll(ctx context.Context) ([]AdminPropertyRow, error) {
	var rows []AdminPropertyRow
	q := `
SELECT p.id, p.title, p.city, p.country, p.is_listed, pd.host_id
FROM properties p
JOIN property_details pd ON pd.property_id = p.id
ORDER BY p.id`
	tx := r.db.WithContext(ctx).Raw(q).Scan(&rows)
	return rows, tx.Error
}

func (r *PropertyRepository) CountByHost(ctx context.Context, hostID int64) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&propertyDetailsModel{}).Where("host_id = ?", hostID).Count(&cnt)
	return cnt, tx.Error
}

func (r *PropertyRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&propertyModel{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PropertyRepository) UpdateDetailsFields(ctx context.Context, propertyID int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&propertyDetailsModel{}).
		Where("property_id = ?", propertyID).Updates(fields).Error
}

// SetRating stores the recomputed aggregate; rating is nil when the last
// review was removed.
func (r *PropertyRepository) SetRating(ctx context.Context, propertyID int64, rating *float64, reviewsNo int) error {
	return r.db.WithContext(ctx).Model(&propertyDetailsModel{}).
		Where("property_id = ?", propertyID).
		Updates(map[string]any{"rating": rating, "reviews_no": reviewsNo}).Error
}

// Delete removes the property and its details row in one transaction.
// Callers are responsible for the no-bookings guard.
func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", id).Delete(&propertyDetailsModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&propertyModel{}, id).Error
	})
}
