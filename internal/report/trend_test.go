package report

import (
	"testing"
	"time"

	"finance_tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(amount float64, when time.Time) domain.Transaction {
	return domain.Transaction{Amount: amount, Date: when}
}

func TestTrendStart(t *testing.T) {
	today := date(2025, time.March, 15)

	assert.Equal(t, date(2025, time.March, 8), TrendStart(today, IntervalDaily, 7))
	assert.Equal(t, date(2025, time.March, 1), TrendStart(today, IntervalWeekly, 2))
	// Monthly stepping borrows across the year boundary
	assert.Equal(t, date(2024, time.July, 1), TrendStart(today, IntervalMonthly, 8))
}

func TestValidInterval(t *testing.T) {
	assert.True(t, ValidInterval("daily"))
	assert.True(t, ValidInterval("weekly"))
	assert.True(t, ValidInterval("monthly"))
	assert.False(t, ValidInterval("yearly"))
	assert.False(t, ValidInterval(""))
}

func TestTrendBucketsDaily(t *testing.T) {
	transactions := []domain.Transaction{
		tx(10, date(2025, time.March, 2)),
		tx(5, time.Date(2025, time.March, 2, 18, 30, 0, 0, time.UTC)), // Same day, later time
		tx(20, date(2025, time.March, 1)),
	}

	buckets := TrendBuckets(transactions, IntervalDaily)

	require.Len(t, buckets, 2)
	// Ascending chronological order
	assert.Equal(t, "2025-03-01", buckets[0].Interval)
	assert.Equal(t, 20.0, buckets[0].TotalAmount)
	assert.Equal(t, 1, buckets[0].TransactionCount)
	assert.Equal(t, "2025-03-02", buckets[1].Interval)
	assert.Equal(t, 15.0, buckets[1].TotalAmount)
	assert.Equal(t, 2, buckets[1].TransactionCount)
}

func TestTrendBucketsWeekly(t *testing.T) {
	transactions := []domain.Transaction{
		tx(10, date(2025, time.January, 6)),  // Monday of ISO week 2
		tx(15, date(2025, time.January, 12)), // Sunday of the same ISO week
		tx(30, date(2025, time.January, 13)), // Monday of ISO week 3
	}

	buckets := TrendBuckets(transactions, IntervalWeekly)

	require.Len(t, buckets, 2)
	assert.Equal(t, "Week 02, 2025", buckets[0].Interval)
	assert.Equal(t, 25.0, buckets[0].TotalAmount)
	assert.Equal(t, 2, buckets[0].TransactionCount)
	assert.Equal(t, "Week 03, 2025", buckets[1].Interval)
	assert.Equal(t, 30.0, buckets[1].TotalAmount)
}

func TestTrendBucketsMonthly(t *testing.T) {
	transactions := []domain.Transaction{
		tx(100, date(2024, time.December, 30)),
		tx(50, date(2025, time.January, 2)),
		tx(25, date(2025, time.January, 20)),
	}

	buckets := TrendBuckets(transactions, IntervalMonthly)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-12", buckets[0].Interval)
	assert.Equal(t, 100.0, buckets[0].TotalAmount)
	assert.Equal(t, "2025-01", buckets[1].Interval)
	assert.Equal(t, 75.0, buckets[1].TotalAmount)
	assert.Equal(t, 2, buckets[1].TransactionCount)
}

func TestTrendBucketsEmpty(t *testing.T) {
	assert.Empty(t, TrendBuckets(nil, IntervalMonthly))
}

func TestMonthlyTotals(t *testing.T) {
	transactions := []domain.Transaction{
		tx(40, date(2025, time.February, 10)),
		tx(60, date(2025, time.February, 20)),
		tx(10, date(2024, time.November, 5)),
	}

	totals := MonthlyTotals(transactions)

	require.Len(t, totals, 2)
	// Ascending chronological order
	assert.Equal(t, 2024, totals[0].Year)
	assert.Equal(t, 11, totals[0].Month)
	assert.Equal(t, "November 2024", totals[0].MonthName)
	assert.Equal(t, 10.0, totals[0].Total)
	assert.Equal(t, "February 2025", totals[1].MonthName)
	assert.Equal(t, 100.0, totals[1].Total)
}
