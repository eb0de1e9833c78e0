package repo

import (
	"time" // Date window bounds

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/report" // Grouped query row types

	"gorm.io/gorm" // GORM ORM library
)

// dateLayout formats window bounds for date-only SQL comparisons
const dateLayout = "2006-01-02"

// TransactionByID fetches one of the user's transactions by primary key
func TransactionByID(db *gorm.DB, userID, transactionID uint) (*domain.Transaction, error) {
	var transaction domain.Transaction
	if err := db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		return nil, err // Not found, not owned, or store failure
	}
	return &transaction, nil
}

// ListTransactions returns a page of the user's transactions, newest first
func ListTransactions(db *gorm.DB, userID uint, offset, limit int) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := db.Where("user_id = ?", userID).
		Order("date desc"). // Newest first
		Offset(offset).     // Pagination offset
		Limit(limit).       // Pagination limit
		Find(&transactions).Error
	return transactions, err
}

// CountTransactions counts all of the user's transactions
func CountTransactions(db *gorm.DB, userID uint) (int64, error) {
	var total int64
	err := db.Model(&domain.Transaction{}).Where("user_id = ?", userID).Count(&total).Error
	return total, err
}

// SumCategoryWindow sums the user's transactions in one category whose date
// falls within [start, end] inclusive, date-only.
func SumCategoryWindow(db *gorm.DB, userID, categoryID uint, start, end time.Time) (float64, error) {
	var total float64
	err := db.Model(&domain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)"). // Zero when the window is empty
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Where("DATE(date) >= ? AND DATE(date) <= ?", start.Format(dateLayout), end.Format(dateLayout)).
		Scan(&total).Error
	return total, err
}

// SumWindow sums all of the user's transactions within [start, end], date-only
func SumWindow(db *gorm.DB, userID uint, start, end time.Time) (float64, error) {
	var total float64
	err := db.Model(&domain.Transaction{}).
		Select("COALESCE(SUM(amount), 0)"). // Zero when the window is empty
		Where("user_id = ?", userID).
		Where("DATE(date) >= ? AND DATE(date) <= ?", start.Format(dateLayout), end.Format(dateLayout)).
		Scan(&total).Error
	return total, err
}

// CountWindow counts the user's transactions within [start, end], date-only
func CountWindow(db *gorm.DB, userID uint, start, end time.Time) (int64, error) {
	var count int64
	err := db.Model(&domain.Transaction{}).
		Where("user_id = ?", userID).
		Where("DATE(date) >= ? AND DATE(date) <= ?", start.Format(dateLayout), end.Format(dateLayout)).
		Count(&count).Error
	return count, err
}

// TransactionsInWindow returns the user's transactions within [start, end]
// in ascending date order, for in-process bucketing.
func TransactionsInWindow(db *gorm.DB, userID uint, start, end time.Time) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	err := db.Where("user_id = ?", userID).
		Where("DATE(date) >= ? AND DATE(date) <= ?", start.Format(dateLayout), end.Format(dateLayout)).
		Order("date"). // Ascending chronological order
		Find(&transactions).Error
	return transactions, err
}

// CategoryTotalsWindow groups the user's transactions by category within
// [start, end], summing per group, ordered descending by total.
func CategoryTotalsWindow(db *gorm.DB, userID uint, start, end time.Time) ([]report.CategoryTotal, error) {
	var totals []report.CategoryTotal
	err := db.Model(&domain.Transaction{}).
		Select("categories.id AS category_id, categories.name AS category_name, SUM(transactions.amount) AS total").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID).
		Where("DATE(transactions.date) >= ? AND DATE(transactions.date) <= ?", start.Format(dateLayout), end.Format(dateLayout)).
		Group("categories.id, categories.name").
		Order("total DESC"). // Biggest spenders first
		Scan(&totals).Error
	return totals, err
}

// TopCategoryWindow returns the user's highest-total category within
// [start, end], or nil when the window has no transactions.
func TopCategoryWindow(db *gorm.DB, userID uint, start, end time.Time) (*report.CategoryTotal, error) {
	totals, err := CategoryTotalsWindow(db, userID, start, end) // Reuse the grouped query
	if err != nil {
		return nil, err // Store failure
	}
	if len(totals) == 0 {
		return nil, nil // No transactions in the window
	}
	return &totals[0], nil // Ordered descending, first is biggest
}
