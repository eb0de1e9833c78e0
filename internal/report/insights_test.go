package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeInsights(t *testing.T) {
	today := date(2025, time.August, 28)
	top := &CategoryTotal{CategoryID: 2, CategoryName: "Housing", Total: 180}

	insights := ComputeInsights(today, 280, 200, top, 14)

	assert.Equal(t, 280.0, insights.ThisMonthSpending)
	assert.Equal(t, 200.0, insights.LastMonthSpending)
	assert.InDelta(t, 40.0, insights.MonthOverMonthChange, 1e-9)
	assert.Equal(t, "Housing", insights.BiggestExpenseCategory)
	assert.Equal(t, 180.0, insights.BiggestExpenseAmount)
	// August 28th is the 28th elapsed day
	assert.Equal(t, 28, insights.DaysElapsed)
	assert.InDelta(t, 10.0, insights.AverageDailySpending, 1e-9)
	assert.Equal(t, int64(14), insights.TransactionCount)
	assert.InDelta(t, 20.0, insights.AverageTransactionAmount, 1e-9)
	assert.Equal(t, 31, insights.DaysInMonth)
}

func TestComputeInsightsEmptyMonth(t *testing.T) {
	today := date(2025, time.February, 1)

	insights := ComputeInsights(today, 0, 0, nil, 0)

	// Every ratio is a defined zero, never a division failure
	assert.Equal(t, 0.0, insights.MonthOverMonthChange)
	assert.Equal(t, NoTransactions, insights.BiggestExpenseCategory)
	assert.Equal(t, 0.0, insights.BiggestExpenseAmount)
	assert.Equal(t, 0.0, insights.AverageDailySpending)
	assert.Equal(t, 0.0, insights.AverageTransactionAmount)
	assert.Equal(t, 1, insights.DaysElapsed)
	assert.Equal(t, 28, insights.DaysInMonth)
}

func TestComputeInsightsPriorMonthZero(t *testing.T) {
	today := date(2025, time.August, 10)

	insights := ComputeInsights(today, 500, 0, nil, 3)

	// No prior month to compare against leaves the change at zero
	assert.Equal(t, 0.0, insights.MonthOverMonthChange)
}

func TestComputeInsightsSpendingDrop(t *testing.T) {
	today := date(2025, time.August, 10)

	insights := ComputeInsights(today, 50, 200, nil, 2)

	assert.InDelta(t, -75.0, insights.MonthOverMonthChange, 1e-9)
}
