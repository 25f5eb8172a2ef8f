package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type WishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

type wishlistItemModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	UserID     int64     `gorm:"column:user_id;uniqueIndex:idx_wishlist_user_property"`
	PropertyID int64     `gorm:"column:property_id;uniqueIndex:idx_wishlist_user_property"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (wishlistItemModel) TableName() string { return "wishlist_items" }

func (r *WishlistRepository) Exists(ctx context.Context, userID, propertyID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&wishlistItemModel{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).Count(&cnt)
	return cnt > 0, tx.Error
}

func (r *WishlistRepository) Add(ctx context.Context, userID, propertyID int64) error {
	return r.db.WithContext(ctx).Create(&wishlistItemModel{UserID: userID, PropertyID: propertyID}).Error
}

func (r *WishlistRepository) Remove(ctx context.Context, userID, propertyID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&wishlistItemModel{}).Error
}

// RemoveByProperty clears wishlist entries when a property is deleted.
func (r *WishlistRepository) RemoveByProperty(ctx context.Context, propertyID int64) error {
	return r.db.WithContext(ctx).Where("property_id = ?", propertyID).Delete(&wishlistItemModel{}).Error
}

// ListProperties returns the user's wishlisted, still-listed properties as
// catalog rows.
func (r *WishlistRepository) ListProperties(ctx context.Context, userID int64) ([]ListingRow, error) {
	var rows []ListingRow
	q := `
SELECT p.id, p.title, p.lat, p.lng, p.city, p.country,
       pd.rating, pd.reviews_no, pd.price_night, pd.local_currency
FROM properties p
JOIN property_details pd ON pd.property_id = p.id
JOIN wishlist_items w ON w.property_id = p.id
WHERE w.user_id = ? AND p.is_listed = ?
ORDER BY w.created_at DESC`
	tx := r.db.WithContext(ctx).Raw(q, userID, true).Scan(&rows)
	return rows, tx.Error
}
