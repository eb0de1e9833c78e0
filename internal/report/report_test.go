package report

import (
	"testing"
	"time"

	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewBudgetStatus(t *testing.T) {
	budget := domain.Budget{ID: 1, Amount: 200, CategoryID: 3, UserID: 7}
	category := domain.Category{ID: 3, Name: "Food", UserID: 7}

	status := NewBudgetStatus(budget, category, 50)

	assert.Equal(t, 50.0, status.Spent)
	assert.Equal(t, 150.0, status.Remaining)
	assert.Equal(t, 25.0, status.PercentageUsed)
	assert.Equal(t, "Food", status.Category.Name)
}

func TestNewBudgetStatusZeroAmount(t *testing.T) {
	budget := domain.Budget{Amount: 0}

	status := NewBudgetStatus(budget, domain.Category{}, 40)

	// Percentage must be a defined zero, never a division failure
	assert.Equal(t, 0.0, status.PercentageUsed)
	assert.Equal(t, -40.0, status.Remaining)
}

func TestCategorySharesSumToHundred(t *testing.T) {
	totals := []CategoryTotal{
		{CategoryID: 1, CategoryName: "Housing", Total: 900},
		{CategoryID: 2, CategoryName: "Food", Total: 60},
		{CategoryID: 3, CategoryName: "Fun", Total: 40},
	}

	grand, shares := CategoryShares(totals)

	require.Len(t, shares, 3)
	assert.Equal(t, 1000.0, grand)
	assert.InDelta(t, 90.0, shares[0].Percentage, 1e-9)
	sum := 0.0
	for _, s := range shares {
		sum += s.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestCategorySharesZeroGrandTotal(t *testing.T) {
	totals := []CategoryTotal{{CategoryName: "Food", Total: 0}}

	grand, shares := CategoryShares(totals)

	assert.Equal(t, 0.0, grand)
	// All percentages are 0 when nothing was spent
	assert.Equal(t, 0.0, shares[0].Percentage)
}

func TestCategorySharesEmpty(t *testing.T) {
	grand, shares := CategoryShares(nil)

	assert.Equal(t, 0.0, grand)
	assert.Empty(t, shares)
}

func TestMonthsAgo(t *testing.T) {
	tests := []struct {
		name   string
		today  time.Time
		months int
		want   time.Time
	}{
		{"borrows across the year boundary", date(2025, time.March, 15), 8, date(2024, time.July, 1)},
		{"stays within the year", date(2025, time.October, 3), 4, date(2025, time.June, 1)},
		{"one month back", date(2025, time.March, 31), 1, date(2025, time.February, 1)},
		{"full year back", date(2025, time.March, 15), 12, date(2024, time.March, 1)},
		{"january steps into december", date(2025, time.January, 10), 2, date(2024, time.November, 1)},
		{"zero months is the current month", date(2025, time.March, 15), 0, date(2025, time.March, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsAgo(tt.today, tt.months))
		})
	}
}

func TestFirstAndLastOfMonth(t *testing.T) {
	today := date(2024, time.February, 15)

	assert.Equal(t, date(2024, time.February, 1), FirstOfMonth(today))
	// 2024 is a leap year
	assert.Equal(t, date(2024, time.February, 29), LastOfMonth(today))
}

func TestPreviousMonthWindow(t *testing.T) {
	start, end := PreviousMonthWindow(date(2025, time.March, 10))
	assert.Equal(t, date(2025, time.February, 1), start)
	assert.Equal(t, date(2025, time.February, 28), end)

	// January's prior month is December of the previous year
	start, end = PreviousMonthWindow(date(2025, time.January, 5))
	assert.Equal(t, date(2024, time.December, 1), start)
	assert.Equal(t, date(2024, time.December, 31), end)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 9, DaysBetween(date(2025, time.May, 1), date(2025, time.May, 10)))
	assert.Equal(t, 0, DaysBetween(date(2025, time.May, 1), date(2025, time.May, 1)))
	// Time of day is ignored
	a := time.Date(2025, time.May, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2025, time.May, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
}
