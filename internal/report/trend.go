package report

import (
	"fmt"  // Bucket label formatting
	"sort" // Chronological bucket ordering
	"time" // Interval arithmetic

	"finance_tracker/internal/domain" // Importing domain models
)

// Supported trend intervals
const (
	IntervalDaily   = "daily"   // One bucket per calendar day
	IntervalWeekly  = "weekly"  // One bucket per ISO week
	IntervalMonthly = "monthly" // One bucket per calendar month
)

// ValidInterval reports whether s names a supported trend interval
func ValidInterval(s string) bool {
	return s == IntervalDaily || s == IntervalWeekly || s == IntervalMonthly
}

// TrendBucket is one interval of a transaction trend
type TrendBucket struct {
	Interval         string  `json:"interval"`          // Human-readable period label
	TransactionCount int     `json:"transaction_count"` // Transactions in the bucket
	TotalAmount      float64 `json:"total_amount"`      // Summed amount in the bucket
}

// MonthlyTotal is one month of the monthly spending report
type MonthlyTotal struct {
	Year      int     `json:"year"`       // Calendar year
	Month     int     `json:"month"`      // Calendar month, 1-12
	MonthName string  `json:"month_name"` // e.g. "January 2024"
	Total     float64 `json:"total"`      // Summed amount for the month
}

// TrendStart computes the window start by stepping back the requested
// number of calendar units from today.
func TrendStart(today time.Time, interval string, timeframe int) time.Time {
	switch interval {
	case IntervalDaily:
		return DateOf(today).AddDate(0, 0, -timeframe) // Back N days
	case IntervalWeekly:
		return DateOf(today).AddDate(0, 0, -7*timeframe) // Back N weeks
	default:
		return MonthsAgo(today, timeframe) // Back N calendar months, first of month
	}
}

// bucketKey maps a transaction date to its bucket start and label
func bucketKey(t time.Time, interval string) (time.Time, string) {
	day := DateOf(t) // Date-only bucketing
	switch interval {
	case IntervalDaily:
		return day, day.Format("2006-01-02") // One day per bucket
	case IntervalWeekly:
		year, week := day.ISOWeek() // ISO week number and year
		// Rewind to Monday, the ISO week start
		weekday := int(day.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday counts as day seven
		}
		start := day.AddDate(0, 0, 1-weekday)
		return start, fmt.Sprintf("Week %02d, %d", week, year)
	default:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC) // First of the month
		return start, start.Format("2006-01")
	}
}

// TrendBuckets groups transactions by interval bucket, summing and counting
// per bucket, in ascending chronological order.
func TrendBuckets(transactions []domain.Transaction, interval string) []TrendBucket {
	type bucket struct {
		start time.Time   // Bucket start, for ordering
		data  TrendBucket // Accumulated label, count, total
	}
	buckets := make(map[string]*bucket) // Label -> accumulator
	for _, tx := range transactions {
		start, label := bucketKey(tx.Date, interval) // Bucket for this transaction
		b, ok := buckets[label]
		if !ok {
			b = &bucket{start: start, data: TrendBucket{Interval: label}} // New bucket
			buckets[label] = b
		}
		b.data.TransactionCount++       // Count the transaction
		b.data.TotalAmount += tx.Amount // Sum the amount
	}
	ordered := make([]*bucket, 0, len(buckets)) // Buckets for sorting
	for _, b := range buckets {
		ordered = append(ordered, b)
	}
	// Ascending chronological order
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].start.Before(ordered[j].start) })
	out := make([]TrendBucket, len(ordered)) // Final trend data
	for i, b := range ordered {
		out[i] = b.data
	}
	return out
}

// MonthlyTotals groups transactions by calendar month, ascending
func MonthlyTotals(transactions []domain.Transaction) []MonthlyTotal {
	totals := make(map[time.Time]float64) // First-of-month -> total
	for _, tx := range transactions {
		day := DateOf(tx.Date)
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC) // Month bucket
		totals[first] += tx.Amount                                           // Sum the amount
	}
	months := make([]time.Time, 0, len(totals)) // Bucket keys for sorting
	for m := range totals {
		months = append(months, m)
	}
	// Ascending chronological order
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	out := make([]MonthlyTotal, len(months)) // Final monthly data
	for i, m := range months {
		out[i] = MonthlyTotal{
			Year:      m.Year(),                 // Calendar year
			Month:     int(m.Month()),           // Calendar month
			MonthName: m.Format("January 2006"), // Human-readable label
			Total:     totals[m],                // Month total
		}
	}
	return out
}
