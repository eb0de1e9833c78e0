package report

import (
	"time" // Date window arithmetic

	"finance_tracker/internal/domain" // Importing domain models
)

// CategoryTotal is one row of a grouped spend-by-category query
type CategoryTotal struct {
	CategoryID   uint    `json:"category_id"`   // Category primary key
	CategoryName string  `json:"category_name"` // Category name
	Total        float64 `json:"total"`         // Summed transaction amount
}

// CategorySpending is a CategoryTotal plus its share of the grand total
type CategorySpending struct {
	CategoryID   uint    `json:"category_id"`   // Category primary key
	CategoryName string  `json:"category_name"` // Category name
	Total        float64 `json:"total"`         // Summed transaction amount
	Percentage   float64 `json:"percentage"`    // Share of the grand total, 0 when the grand total is 0
}

// BudgetStatus is a budget enriched with live spend metrics and its category
type BudgetStatus struct {
	domain.Budget                  // Budget fields, flattened into the response
	Spent          float64         `json:"spent"`           // Summed spend in the budget window
	Remaining      float64         `json:"remaining"`       // Amount minus spent
	PercentageUsed float64         `json:"percentage_used"` // Spent over amount, 0 when amount <= 0
	Category       domain.Category `json:"category"`        // Joined category
}

// NewBudgetStatus computes the derived metrics for one budget
func NewBudgetStatus(b domain.Budget, category domain.Category, spent float64) BudgetStatus {
	percentage := 0.0 // Defined zero when the budget amount is not positive
	if b.Amount > 0 {
		percentage = spent / b.Amount * 100 // Share of the budget consumed
	}
	return BudgetStatus{
		Budget:         b,                // Underlying budget
		Spent:          spent,            // Summed spend
		Remaining:      b.Amount - spent, // What is left
		PercentageUsed: percentage,       // Consumption percentage
		Category:       category,         // Joined category
	}
}

// CategoryShares computes each group's percentage of the grand total.
// Input order is preserved; the grand total is returned alongside.
func CategoryShares(totals []CategoryTotal) (float64, []CategorySpending) {
	grand := 0.0 // Grand total across all groups
	for _, t := range totals {
		grand += t.Total
	}
	shares := make([]CategorySpending, len(totals)) // Output breakdown
	for i, t := range totals {
		percentage := 0.0 // All shares are 0 when nothing was spent
		if grand > 0 {
			percentage = t.Total / grand * 100 // Share of the grand total
		}
		shares[i] = CategorySpending{
			CategoryID:   t.CategoryID,   // Category primary key
			CategoryName: t.CategoryName, // Category name
			Total:        t.Total,        // Group total
			Percentage:   percentage,     // Share of the grand total
		}
	}
	return grand, shares
}

// DateOf truncates a timestamp to its calendar date in UTC.
// All window comparisons in reports are date-only.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b, date-only
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)) / (24 * time.Hour))
}

// FirstOfMonth returns the first day of today's month
func FirstOfMonth(today time.Time) time.Time {
	return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// LastOfMonth returns the last day of today's month
func LastOfMonth(today time.Time) time.Time {
	// Day zero of the next month is the last day of this one
	return time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// PreviousMonthWindow returns the bounds of the prior full calendar month
func PreviousMonthWindow(today time.Time) (time.Time, time.Time) {
	start := time.Date(today.Year(), today.Month()-1, 1, 0, 0, 0, 0, time.UTC) // First of last month
	end := FirstOfMonth(today).AddDate(0, 0, -1)                               // Day before the first of this month
	return start, end
}

// MonthsAgo returns the first day of the month the given number of calendar
// months before today. Month arithmetic borrows across year boundaries:
// eight months before March lands on July of the previous year.
func MonthsAgo(today time.Time, months int) time.Time {
	year := today.Year()                     // Candidate year
	month := int(today.Month()) - months - 1 // Zero-based month index stepped back
	for month < 0 {
		month += 12 // Borrow a year
		year--
	}
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
}
