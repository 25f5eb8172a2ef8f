package repository

import "gorm.io/gorm"

// Migrate creates or updates every table the repositories read and write.
// Used by the seed tool and tests; production schemas are managed the same
// way for now.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&propertyModel{},
		&propertyDetailsModel{},
		&bookingModel{},
		&paymentModel{},
		&reviewModel{},
		&wishlistItemModel{},
	)
}
