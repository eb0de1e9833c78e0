package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Report windows

	"finance_tracker/internal/repo"   // Owner-scoped queries
	"finance_tracker/internal/report" // Aggregation core
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// reportCacheTTL is how long a computed report stays valid in Redis.
// Writes invalidate earlier; the TTL only bounds staleness across instances.
const reportCacheTTL = 60 * time.Second

// SpendingByCategoryResponse is the spend-by-category report payload
type SpendingByCategoryResponse struct {
	StartDate          string                    `json:"start_date"`           // Window start
	EndDate            string                    `json:"end_date"`             // Window end
	TotalSpending      float64                   `json:"total_spending"`       // Grand total
	SpendingByCategory []report.CategorySpending `json:"spending_by_category"` // Per-category breakdown
	Cached             bool                      `json:"cached"`               // Whether served from cache
}

// MonthlySpendingResponse is the monthly spending report payload
type MonthlySpendingResponse struct {
	MonthsAnalyzed  int                   `json:"months_analyzed"`  // Trailing months requested
	MonthlySpending []report.MonthlyTotal `json:"monthly_spending"` // Per-month totals, ascending
	Cached          bool                  `json:"cached"`           // Whether served from cache
}

// TransactionTrendsResponse is the transaction trend report payload
type TransactionTrendsResponse struct {
	Interval  string               `json:"interval"`   // daily, weekly, or monthly
	Timeframe int                  `json:"timeframe"`  // Number of trailing intervals
	TrendData []report.TrendBucket `json:"trend_data"` // Buckets, ascending
	Cached    bool                 `json:"cached"`     // Whether served from cache
}

// BudgetPerformanceResponse is the budget performance report payload
type BudgetPerformanceResponse struct {
	BudgetPerformance []report.BudgetPerformance `json:"budget_performance"` // One entry per budget
	Cached            bool                       `json:"cached"`             // Whether served from cache
}

// SpendingInsightsResponse is the spending insights payload
type SpendingInsightsResponse struct {
	report.Insights                      // Insight metrics, flattened
	Cached          bool `json:"cached"` // Whether served from cache
}

// SpendingByCategoryHandler groups the window's spend by category
func SpendingByCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		today := time.Now()                 // Current date
		start := report.FirstOfMonth(today) // Default window start
		end := report.DateOf(today)         // Default window end
		// Override the start when provided
		if s := c.Query("start_date"); s != "" {
			parsed, err := parseDate(s)
			if err != nil {
				// If parsing fails, return bad request
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start_date"})
				return
			}
			start = report.DateOf(parsed)
		}
		// Override the end when provided
		if e := c.Query("end_date"); e != "" {
			parsed, err := parseDate(e)
			if err != nil {
				// If parsing fails, return bad request
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end_date"})
				return
			}
			end = report.DateOf(parsed)
		}
		ctx := context.Background() // Context for Redis operations
		// Cache key carries the resolved window
		cacheKey := utils.ReportCacheKey(userID, "spending-by-category", start.Format("2006-01-02")+"_"+end.Format("2006-01-02"))
		var cached SpendingByCategoryResponse // Cached payload
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		// Grouped sums from the store
		totals, err := repo.CategoryTotalsWindow(db, userID, start, end)
		if err != nil {
			// If the query fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		// Grand total and per-category shares
		grand, shares := report.CategoryShares(totals)
		resp := SpendingByCategoryResponse{
			StartDate:          start.Format("2006-01-02"), // Window start
			EndDate:            end.Format("2006-01-02"),   // Window end
			TotalSpending:      grand,                      // Grand total
			SpendingByCategory: shares,                     // Breakdown
		}
		// Cache the result
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, reportCacheTTL)
		c.JSON(http.StatusOK, resp) // Return the report
	}
}

// MonthlySpendingHandler reports per-month totals for trailing months
func MonthlySpendingHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		months := 6 // Default trailing months
		if m := c.Query("months"); m != "" {
			// Convert months to integer
			v, err := strconv.Atoi(m)
			if err != nil || v <= 0 {
				// If invalid, return bad request
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid months"})
				return
			}
			months = v // Set months if valid
		}
		today := time.Now()                      // Current date
		start := report.MonthsAgo(today, months) // First day of the earliest month
		end := report.LastOfMonth(today)         // Last day of the current month
		ctx := context.Background()              // Context for Redis operations
		// Cache key carries the month count
		cacheKey := utils.ReportCacheKey(userID, "monthly-spending", strconv.Itoa(months))
		var cached MonthlySpendingResponse // Cached payload
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		// Fetch the window's transactions for bucketing
		transactions, err := repo.TransactionsInWindow(db, userID, start, end)
		if err != nil {
			// If the query fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		resp := MonthlySpendingResponse{
			MonthsAnalyzed:  months,                             // Trailing months requested
			MonthlySpending: report.MonthlyTotals(transactions), // Per-month totals
		}
		// Cache the result
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, reportCacheTTL)
		c.JSON(http.StatusOK, resp) // Return the report
	}
}

// TransactionTrendsHandler buckets transactions by a chosen interval
func TransactionTrendsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		interval := c.DefaultQuery("interval", report.IntervalMonthly) // Bucket size
		if !report.ValidInterval(interval) {
			// Unknown intervals are rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Interval must be daily, weekly, or monthly"})
			return
		}
		timeframe := 12 // Default trailing intervals
		if t := c.Query("timeframe"); t != "" {
			// Convert timeframe to integer
			v, err := strconv.Atoi(t)
			if err != nil || v <= 0 {
				// If invalid, return bad request
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid timeframe"})
				return
			}
			timeframe = v // Set timeframe if valid
		}
		today := time.Now()                                    // Current date
		start := report.TrendStart(today, interval, timeframe) // Window start
		ctx := context.Background()                            // Context for Redis operations
		// Cache key carries interval and timeframe
		cacheKey := utils.ReportCacheKey(userID, "transaction-trends", interval+"_"+strconv.Itoa(timeframe))
		var cached TransactionTrendsResponse // Cached payload
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		// Fetch the window's transactions for bucketing
		transactions, err := repo.TransactionsInWindow(db, userID, start, today)
		if err != nil {
			// If the query fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		resp := TransactionTrendsResponse{
			Interval:  interval,                                    // Bucket size
			Timeframe: timeframe,                                   // Trailing intervals
			TrendData: report.TrendBuckets(transactions, interval), // Buckets, ascending
		}
		// Cache the result
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, reportCacheTTL)
		c.JSON(http.StatusOK, resp) // Return the report
	}
}

// BudgetPerformanceHandler reports live and projected metrics per budget
func BudgetPerformanceHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background() // Context for Redis operations
		cacheKey := utils.ReportCacheKey(userID, "budget-performance", "")
		var cached BudgetPerformanceResponse // Cached payload
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		// Every budget of the user, in listing order, unpaginated
		budgets, err := repo.AllBudgets(db, userID)
		if err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		today := time.Now()                                              // Current date
		performance := make([]report.BudgetPerformance, 0, len(budgets)) // One entry per budget
		for _, budget := range budgets {
			// Join the category for its name
			category, err := repo.CategoryByID(db, userID, budget.CategoryID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
				return
			}
			// Sum the category's spend inside the budget window
			spent, err := repo.SumCategoryWindow(db, userID, budget.CategoryID, budget.StartDate, budget.EndDate)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
				return
			}
			// Compute the derived metrics
			performance = append(performance, report.Performance(budget, category.Name, spent, today))
		}
		resp := BudgetPerformanceResponse{BudgetPerformance: performance}
		// Cache the result
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, reportCacheTTL)
		c.JSON(http.StatusOK, resp) // Return the report
	}
}

// SpendingInsightsHandler summarizes the current month's spending patterns
func SpendingInsightsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background() // Context for Redis operations
		cacheKey := utils.ReportCacheKey(userID, "spending-insights", "")
		var cached SpendingInsightsResponse // Cached payload
		// Try to get from cache
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			cached.Cached = true // Indicate response is from cache
			c.JSON(http.StatusOK, cached)
			return
		}
		today := time.Now()                                     // Current date
		firstOfMonth := report.FirstOfMonth(today)              // Month-to-date window start
		lastStart, lastEnd := report.PreviousMonthWindow(today) // Prior full month window
		// Month-to-date spending
		thisMonth, err := repo.SumWindow(db, userID, firstOfMonth, today)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		// Prior month spending
		lastMonth, err := repo.SumWindow(db, userID, lastStart, lastEnd)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		// Highest-total category this month, nil when none
		top, err := repo.TopCategoryWindow(db, userID, firstOfMonth, today)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		// Transactions this month
		count, err := repo.CountWindow(db, userID, firstOfMonth, today)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute report"})
			return
		}
		// Derive the insight metrics
		resp := SpendingInsightsResponse{Insights: report.ComputeInsights(today, thisMonth, lastMonth, top, count)}
		// Cache the result
		_ = utils.SetCache(ctx, rdb, cacheKey, resp, reportCacheTTL)
		c.JSON(http.StatusOK, resp) // Return the report
	}
}
