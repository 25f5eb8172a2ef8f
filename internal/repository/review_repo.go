package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"stayhub/internal/domain"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

type reviewModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	BookingID  int64     `gorm:"column:booking_id;uniqueIndex"`
	PropertyID int64     `gorm:"column:property_id;index"`
	UserID     int64     `gorm:"column:user_id;index"`
	Rating     int       `gorm:"column:rating"`
	Title      string    `gorm:"column:title"`
	Body       string    `gorm:"column:body"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (reviewModel) TableName() string { return "reviews" }

func toDomainReview(m reviewModel) *domain.Review {
	return &domain.Review{
		ID:         m.ID,
		BookingID:  m.BookingID,
		PropertyID: m.PropertyID,
		UserID:     m.UserID,
		Rating:     m.Rating,
		Title:      m.Title,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	m := reviewModel{
		BookingID:  rv.BookingID,
		PropertyID: rv.PropertyID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		Title:      rv.Title,
		Body:       rv.Body,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rv = *toDomainReview(m)
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var m reviewModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainReview(m), nil
}

// ExistsForBooking enforces the one-review-per-booking rule.
func (r *ReviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&reviewModel{}).Where("booking_id = ?", bookingID).Count(&cnt)
	return cnt > 0, tx.Error
}

// PropertyReviewRow joins each review with its author's public profile bits
// for display under a listing.
type PropertyReviewRow struct {
	ID        int64     `gorm:"column:id" json:"id"`
	Rating    int       `gorm:"column:rating" json:"rating"`
	Title     string    `gorm:"column:title" json:"title"`
	Body      string    `gorm:"column:body" json:"body"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	FirstName string    `gorm:"column:first_name" json:"first_name"`
	AvatarURL string    `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
}

func (r *ReviewRepository) ListByProperty(ctx context.Context, propertyID int64) ([]PropertyReviewRow, error) {
	var rows []PropertyReviewRow
	q := `
SELECT rv.id, rv.rating, rv.title, rv.body, rv.created_at,
       u.first_name, u.avatar_url
FROM reviews rv
JOIN users u ON u.id = rv.user_id
WHERE rv.property_id = ?
ORDER BY rv.created_at DESC`
	tx := r.db.WithContext(ctx).Raw(q, propertyID).Scan(&rows)
	return rows, tx.Error
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	var ms []reviewModel
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Review, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReview(m))
	}
	return out, nil
}

func (r *ReviewRepository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&reviewModel{}).Where("id = ?", id).Updates(fields).Error
}

func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&reviewModel{}, id).Error
}

// RatingStats returns the average rating and review count for a property;
// count 0 means no reviews remain and the aggregate must be cleared.
func (r *ReviewRepository) RatingStats(ctx context.Context, propertyID int64) (float64, int, error) {
	var row struct {
		Avg *float64 `gorm:"column:avg_rating"`
		Cnt int      `gorm:"column:cnt"`
	}
	q := `SELECT AVG(rating) AS avg_rating, COUNT(1) AS cnt FROM reviews WHERE property_id = ?`
	tx := r.db.WithContext(ctx).Raw(q, propertyID).Scan(&row)
	if tx.Error != nil {
		return 0, 0, tx.Error
	}
	if row.Avg == nil {
		return 0, row.Cnt, nil
	}
	return *row.Avg, row.Cnt, nil
}
