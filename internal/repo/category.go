package repo

// Every query takes the owning user id as a mandatory filter so a
// cross-user id can only ever come back as record-not-found.

import (
	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// CategoryByID fetches one of the user's categories by primary key
func CategoryByID(db *gorm.DB, userID, categoryID uint) (*domain.Category, error) {
	var category domain.Category
	if err := db.Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		return nil, err // Not found, not owned, or store failure
	}
	return &category, nil
}

// CategoryByName fetches one of the user's categories by name
func CategoryByName(db *gorm.DB, userID uint, name string) (*domain.Category, error) {
	var category domain.Category
	if err := db.Where("name = ? AND user_id = ?", name, userID).First(&category).Error; err != nil {
		return nil, err // Not found, not owned, or store failure
	}
	return &category, nil
}

// ListCategories returns the user's categories in insertion order
func ListCategories(db *gorm.DB, userID uint, offset, limit int) ([]domain.Category, error) {
	var categories []domain.Category
	err := db.Where("user_id = ?", userID).
		Order("id").        // Stable insertion order
		Offset(offset).     // Pagination offset
		Limit(limit).       // Pagination limit
		Find(&categories).Error
	return categories, err
}

// CategoryInUse reports whether any of the user's transactions or budgets
// still reference the category. Referenced categories must not be deleted.
func CategoryInUse(db *gorm.DB, userID, categoryID uint) (bool, error) {
	var count int64
	// Check transactions first
	err := db.Model(&domain.Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err // Store failure
	}
	if count > 0 {
		return true, nil // Referenced by a transaction
	}
	// Then budgets
	err = db.Model(&domain.Budget{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	if err != nil {
		return false, err // Store failure
	}
	return count > 0, nil
}
