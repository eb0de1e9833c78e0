package report

import (
	"testing"
	"time"

	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPerformanceActiveBudget(t *testing.T) {
	today := date(2025, time.June, 11)
	budget := domain.Budget{
		ID:        5,
		Amount:    300,
		StartDate: date(2025, time.June, 1), // 10 days elapsed
		EndDate:   date(2025, time.July, 1), // 20 days remaining
		Name:      "Summer groceries",
	}

	perf := Performance(budget, "Food", 100, today)

	assert.True(t, perf.IsActive)
	assert.Equal(t, "Summer groceries", perf.BudgetName)
	assert.Equal(t, 100.0, perf.Spent)
	assert.Equal(t, 200.0, perf.Remaining)
	assert.InDelta(t, 33.333, perf.PercentageUsed, 0.001)
	assert.Equal(t, StatusOnTrack, perf.Status)
	assert.Equal(t, 20, perf.DaysRemaining)
	assert.InDelta(t, 10.0, perf.DailyBurnRate, 1e-9)
	// 100 spent + 10/day for 20 more days = exactly the budget
	assert.InDelta(t, 300.0, perf.ForecastEndAmount, 1e-9)
	assert.Equal(t, ForecastUnder, perf.ForecastStatus)
}

func TestPerformanceProjectedOver(t *testing.T) {
	today := date(2025, time.June, 11)
	budget := domain.Budget{
		Amount:    300,
		StartDate: date(2025, time.June, 1),
		EndDate:   date(2025, time.July, 1),
	}

	perf := Performance(budget, "Food", 150, today)

	// 15/day for 20 more days projects to 450 against a 300 budget
	assert.Equal(t, StatusOnTrack, perf.Status) // Not over yet
	assert.InDelta(t, 450.0, perf.ForecastEndAmount, 1e-9)
	assert.Equal(t, ForecastOver, perf.ForecastStatus)
}

func TestPerformanceNotStarted(t *testing.T) {
	today := date(2025, time.June, 11)
	budget := domain.Budget{
		Amount:    100,
		StartDate: date(2025, time.July, 1), // Window opens next month
		EndDate:   date(2025, time.July, 31),
	}

	perf := Performance(budget, "Travel", 0, today)

	assert.False(t, perf.IsActive)
	assert.Equal(t, 0, perf.DaysRemaining)
	// No elapsed days means a defined-zero burn rate, never a division failure
	assert.Equal(t, 0.0, perf.DailyBurnRate)
	assert.Equal(t, 0.0, perf.ForecastEndAmount)
	assert.Equal(t, ForecastNotStarted, perf.ForecastStatus)
}

func TestPerformanceClosedBudget(t *testing.T) {
	today := date(2025, time.June, 11)
	budget := domain.Budget{
		Amount:    100,
		StartDate: date(2025, time.April, 1),
		EndDate:   date(2025, time.April, 21), // Closed 51 days ago
	}

	perf := Performance(budget, "Food", 130, today)

	assert.False(t, perf.IsActive)
	// Days remaining never goes negative after the window closes
	assert.Equal(t, 0, perf.DaysRemaining)
	// Elapsed days are capped at the window length
	assert.InDelta(t, 6.5, perf.DailyBurnRate, 1e-9)
	assert.InDelta(t, 130.0, perf.ForecastEndAmount, 1e-9)
	assert.Equal(t, ForecastOver, perf.ForecastStatus)
	assert.Equal(t, StatusOverBudget, perf.Status)
}

func TestPerformanceNameFallsBackToCategory(t *testing.T) {
	today := date(2025, time.June, 11)
	budget := domain.Budget{
		Amount:    100,
		StartDate: date(2025, time.June, 1),
		EndDate:   date(2025, time.June, 30),
	}

	perf := Performance(budget, "Utilities", 10, today)

	assert.Equal(t, "Budget for Utilities", perf.BudgetName)
	assert.Equal(t, "Utilities", perf.Category)
}

func TestPerformanceZeroAmountBudget(t *testing.T) {
	today := date(2025, time.June, 11)
	budget := domain.Budget{
		StartDate: date(2025, time.June, 1),
		EndDate:   date(2025, time.June, 30),
	}

	perf := Performance(budget, "Misc", 50, today)

	// Percentage is a defined zero when the amount is not positive
	assert.Equal(t, 0.0, perf.PercentageUsed)
	assert.Equal(t, StatusOnTrack, perf.Status)
}
