package repo

import (
	"time" // Window overlap bounds

	"finance_tracker/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// BudgetByID fetches one of the user's budgets by primary key
func BudgetByID(db *gorm.DB, userID, budgetID uint) (*domain.Budget, error) {
	var budget domain.Budget
	if err := db.Where("id = ? AND user_id = ?", budgetID, userID).First(&budget).Error; err != nil {
		return nil, err // Not found, not owned, or store failure
	}
	return &budget, nil
}

// ListBudgets returns the user's budgets in insertion order
func ListBudgets(db *gorm.DB, userID uint, offset, limit int) ([]domain.Budget, error) {
	var budgets []domain.Budget
	err := db.Where("user_id = ?", userID).
		Order("id").    // Stable insertion order
		Offset(offset). // Pagination offset
		Limit(limit).   // Pagination limit
		Find(&budgets).Error
	return budgets, err
}

// AllBudgets returns every budget of the user in insertion order.
// Reports cover the full set, unlike the paginated listing.
func AllBudgets(db *gorm.DB, userID uint) ([]domain.Budget, error) {
	var budgets []domain.Budget
	err := db.Where("user_id = ?", userID).Order("id").Find(&budgets).Error
	return budgets, err
}

// BudgetsForStatus returns the user's budgets for status aggregation.
// With activeOnly set, only budgets whose window contains today are kept.
func BudgetsForStatus(db *gorm.DB, userID uint, activeOnly bool, today time.Time) ([]domain.Budget, error) {
	query := db.Where("user_id = ?", userID).Order("id") // Insertion order
	if activeOnly {
		day := today.Format(dateLayout) // Date-only comparison
		query = query.Where("start_date <= ? AND end_date >= ?", day, day)
	}
	var budgets []domain.Budget
	err := query.Find(&budgets).Error
	return budgets, err
}

// HasOverlappingBudget reports whether the user already has a budget for the
// category whose window overlaps [start, end]. excludeID skips the budget
// being updated; pass zero on creation.
func HasOverlappingBudget(db *gorm.DB, userID, categoryID uint, start, end time.Time, excludeID uint) (bool, error) {
	query := db.Model(&domain.Budget{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		// Windows overlap when each starts before the other ends
		Where("end_date >= ? AND start_date <= ?", start.Format(dateLayout), end.Format(dateLayout))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID) // Ignore the budget being updated
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err // Store failure
	}
	return count > 0, nil
}
