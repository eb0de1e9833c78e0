package repo

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserByEmail fetches a user by email address
func UserByEmail(db *gorm.DB, email string) (*domain.User, error) {
	var user domain.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err // Not found or store failure
	}
	return &user, nil
}

// UserByID fetches a user by primary key
func UserByID(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err // Not found or store failure
	}
	return &user, nil
}
