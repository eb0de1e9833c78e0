package report

import (
	"time" // Date window arithmetic

	"finance_tracker/internal/domain" // Importing domain models
)

// Forecast and consumption labels
const (
	StatusOnTrack      = "On Track"              // Percentage used at or under 100
	StatusOverBudget   = "Over Budget"           // Percentage used over 100
	ForecastUnder      = "Under Budget"          // Projected spend within the budget
	ForecastOver       = "Projected Over Budget" // Projected spend over the budget
	ForecastNotStarted = "Not Started"           // Budget window has no elapsed days yet
)

// BudgetPerformance is one budget's live and projected metrics
type BudgetPerformance struct {
	BudgetID          uint      `json:"budget_id"`           // Budget primary key
	BudgetName        string    `json:"budget_name"`         // Display name, falls back to the category
	Category          string    `json:"category"`            // Category name
	StartDate         time.Time `json:"start_date"`          // Window start
	EndDate           time.Time `json:"end_date"`            // Window end
	IsActive          bool      `json:"is_active"`           // Today within the window
	BudgetAmount      float64   `json:"budget_amount"`       // Budgeted amount
	Spent             float64   `json:"spent"`               // Summed spend in the window
	Remaining         float64   `json:"remaining"`           // Amount minus spent
	PercentageUsed    float64   `json:"percentage_used"`     // Spent over amount, 0 when amount <= 0
	Status            string    `json:"status"`              // On Track or Over Budget
	DaysRemaining     int       `json:"days_remaining"`      // Days until window end, never negative
	DailyBurnRate     float64   `json:"daily_burn_rate"`     // Spend per elapsed day, 0 before the window starts
	ForecastEndAmount float64   `json:"forecast_end_amount"` // Spent plus burn rate times days remaining
	ForecastStatus    string    `json:"forecast_status"`     // Forecast label
}

// Performance computes the performance metrics for one budget as of today.
// Pure; all date comparisons are date-only.
func Performance(b domain.Budget, categoryName string, spent float64, today time.Time) BudgetPerformance {
	day := DateOf(today)         // Today, date-only
	start := DateOf(b.StartDate) // Window start, date-only
	end := DateOf(b.EndDate)     // Window end, date-only

	percentage := 0.0 // Defined zero when the budget amount is not positive
	if b.Amount > 0 {
		percentage = spent / b.Amount * 100 // Share of the budget consumed
	}
	status := StatusOnTrack // Consumption label
	if percentage > 100 {
		status = StatusOverBudget
	}

	// Active means today falls inside the window
	isActive := !day.Before(start) && !day.After(end)
	daysRemaining := 0 // Zero once the window has closed
	if isActive {
		daysRemaining = DaysBetween(day, end) // Days left in the window
	}

	totalDays := DaysBetween(start, end)   // Full window length
	daysElapsed := DaysBetween(start, day) // Days since the window opened
	if daysElapsed > totalDays {
		daysElapsed = totalDays // Cap at the window length once it has closed
	}

	burnRate := 0.0                      // Spend per elapsed day
	forecast := 0.0                      // Projected spend at window end
	forecastStatus := ForecastNotStarted // Before the window opens there is nothing to project
	if daysElapsed > 0 {
		burnRate = spent / float64(daysElapsed)            // Average daily spend so far
		forecast = spent + burnRate*float64(daysRemaining) // Projected window-end spend
		forecastStatus = ForecastUnder                     // Within budget unless projected over
		if forecast > b.Amount {
			forecastStatus = ForecastOver
		}
	}

	name := b.Name // Display name
	if name == "" {
		name = "Budget for " + categoryName // Fall back to the category
	}

	return BudgetPerformance{
		BudgetID:          b.ID,             // Budget primary key
		BudgetName:        name,             // Display name
		Category:          categoryName,     // Category name
		StartDate:         start,            // Window start
		EndDate:           end,              // Window end
		IsActive:          isActive,         // Today within the window
		BudgetAmount:      b.Amount,         // Budgeted amount
		Spent:             spent,            // Summed spend
		Remaining:         b.Amount - spent, // What is left
		PercentageUsed:    percentage,       // Consumption percentage
		Status:            status,           // Consumption label
		DaysRemaining:     daysRemaining,    // Days left, never negative
		DailyBurnRate:     burnRate,         // Spend per elapsed day
		ForecastEndAmount: forecast,         // Projected window-end spend
		ForecastStatus:    forecastStatus,   // Forecast label
	}
}
