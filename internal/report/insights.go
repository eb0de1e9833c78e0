package report

import "time" // Month window arithmetic

// NoTransactions is the sentinel top category when the month has no spend
const NoTransactions = "No transactions"

// Insights summarizes the caller's spending patterns for the current month
type Insights struct {
	ThisMonthSpending        float64 `json:"this_month_spending"`        // Month-to-date total
	LastMonthSpending        float64 `json:"last_month_spending"`        // Prior full calendar month total
	MonthOverMonthChange     float64 `json:"month_over_month_change"`    // Percent change, 0 when the prior month is 0
	BiggestExpenseCategory   string  `json:"biggest_expense_category"`   // Highest-total category this month
	BiggestExpenseAmount     float64 `json:"biggest_expense_amount"`     // Its total
	AverageDailySpending     float64 `json:"average_daily_spending"`     // Month-to-date total over days elapsed
	TransactionCount         int64   `json:"transaction_count"`          // Transactions this month
	AverageTransactionAmount float64 `json:"average_transaction_amount"` // 0 when the count is 0
	DaysElapsed              int     `json:"days_elapsed"`               // Days elapsed this month, including today
	DaysInMonth              int     `json:"days_in_month"`              // Length of the current month
}

// ComputeInsights derives the spending insight metrics from pre-aggregated
// inputs. top may be nil when the month has no transactions. Pure.
func ComputeInsights(today time.Time, thisMonth, lastMonth float64, top *CategoryTotal, count int64) Insights {
	momChange := 0.0 // Defined zero when there is no prior month to compare against
	if lastMonth > 0 {
		momChange = (thisMonth - lastMonth) / lastMonth * 100 // Month-over-month percent change
	}

	biggestCategory := NoTransactions // Sentinel when the month is empty
	biggestAmount := 0.0
	if top != nil {
		biggestCategory = top.CategoryName // Highest-total category
		biggestAmount = top.Total          // Its total
	}

	// Days elapsed this month, counting today as a full day
	daysElapsed := DaysBetween(FirstOfMonth(today), today) + 1
	avgDaily := 0.0 // Defined zero guard, though daysElapsed is always >= 1
	if daysElapsed > 0 {
		avgDaily = thisMonth / float64(daysElapsed) // Average daily spend
	}

	avgTransaction := 0.0 // Defined zero when the month has no transactions
	if count > 0 {
		avgTransaction = thisMonth / float64(count) // Average transaction amount
	}

	return Insights{
		ThisMonthSpending:        thisMonth,                // Month-to-date total
		LastMonthSpending:        lastMonth,                // Prior month total
		MonthOverMonthChange:     momChange,                // Percent change
		BiggestExpenseCategory:   biggestCategory,          // Top category or sentinel
		BiggestExpenseAmount:     biggestAmount,            // Top category total
		AverageDailySpending:     avgDaily,                 // Average daily spend
		TransactionCount:         count,                    // Transactions this month
		AverageTransactionAmount: avgTransaction,           // Average transaction amount
		DaysElapsed:              daysElapsed,              // Days elapsed including today
		DaysInMonth:              LastOfMonth(today).Day(), // Month length
	}
}
