package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // Query flag parsing
	"time"     // Window dates

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Owner-scoped queries
	"finance_tracker/internal/report" // Derived budget metrics
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// BudgetRequest represents a create or update request for a budget
type BudgetRequest struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"` // Budgeted amount
	CategoryID uint    `json:"category_id" binding:"required"` // Category reference
	StartDate  string  `json:"start_date"`                     // Optional, defaults to today
	EndDate    string  `json:"end_date" binding:"required"`    // Window end
	Name       string  `json:"name"`                           // Optional display name
}

// resolveBudgetWindow validates a request and resolves its window.
// An omitted start date falls back to defaultStart: today on creation,
// the stored window start on update.
func resolveBudgetWindow(req BudgetRequest, defaultStart time.Time) (time.Time, time.Time, error) {
	// Validate the amount
	if err := validateAmount(req.Amount); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := report.DateOf(defaultStart) // Fallback window start
	if req.StartDate != "" {
		// Parse the provided start date
		parsed, err := parseDate(req.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = report.DateOf(parsed)
	}
	// Parse the end date
	parsed, err := parseDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := report.DateOf(parsed)
	// Reject inverted windows
	if err := validateWindow(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// CreateBudgetHandler creates a budget for the authenticated user.
// At most one budget may cover a category in any given period.
func CreateBudgetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req BudgetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate amount and resolve the window, starting today by default
		start, end, err := resolveBudgetWindow(req, time.Now())
		if err != nil {
			// Surface the validation reason
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Verify the category exists and belongs to the user
		if _, err := repo.CategoryByID(db, userID, req.CategoryID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		// Check for an overlapping budget on the same category
		overlaps, err := repo.HasOverlappingBudget(db, userID, req.CategoryID, start, end, 0)
		if err != nil {
			// If the check fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
			return
		}
		if overlaps {
			// Overlapping windows are a conflict
			c.JSON(http.StatusConflict, gin.H{"error": "A budget for this category and time period already exists"})
			return
		}
		// Create the budget
		budget := domain.Budget{
			Amount:     req.Amount,     // Validated amount
			StartDate:  start,          // Window start
			EndDate:    end,            // Window end
			CategoryID: req.CategoryID, // Owned category
			UserID:     userID,         // Owner
			Name:       req.Name,       // Optional display name
		}
		if err := db.Create(&budget).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":     userID,         // User ID
				"category_id": req.CategoryID, // Category ID
				"error":       err.Error(),    // Error message
			}).Error("Failed to create budget") // Log failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
			return
		}
		// New budgets change the performance report
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		// Return the created budget
		c.JSON(http.StatusCreated, budget)
	}
}

// ListBudgetsHandler returns the authenticated user's budgets
func ListBudgetsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		skip, limit := listParams(c) // Pagination parameters
		// Only return budgets belonging to the current user
		budgets, err := repo.ListBudgets(db, userID, skip, limit)
		if err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budgets"})
			return
		}
		c.JSON(http.StatusOK, budgets) // Return the budgets
	}
}

// BudgetStatusHandler computes live spend-vs-budget metrics for the user.
// active_only (default true) restricts to budgets whose window contains today.
func BudgetStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		activeOnly := true // Default to active budgets
		if v := c.Query("active_only"); v != "" {
			parsed, err := strconv.ParseBool(v) // Accepts true/false, 1/0, t/f
			if err != nil {
				// Unparseable flags are rejected rather than guessed
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid active_only"})
				return
			}
			activeOnly = parsed
		}
		today := time.Now() // Current date
		// Select the budgets to report on, in listing order
		budgets, err := repo.BudgetsForStatus(db, userID, activeOnly, today)
		if err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch budgets"})
			return
		}
		statuses := make([]report.BudgetStatus, 0, len(budgets)) // One status per budget
		for _, budget := range budgets {
			// Sum the category's spend inside the budget window
			spent, err := repo.SumCategoryWindow(db, userID, budget.CategoryID, budget.StartDate, budget.EndDate)
			if err != nil {
				// If summing fails, return error
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute budget status"})
				return
			}
			// Join the category for the response
			category, err := repo.CategoryByID(db, userID, budget.CategoryID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute budget status"})
				return
			}
			// Compute remaining and percentage used
			statuses = append(statuses, report.NewBudgetStatus(budget, *category, spent))
		}
		c.JSON(http.StatusOK, statuses) // Return the statuses
	}
}

// GetBudgetHandler returns one of the user's budgets by id
func GetBudgetHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		budgetID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget id"})
			return
		}
		// Not found covers both absent and not owned
		budget, err := repo.BudgetByID(db, userID, budgetID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
		c.JSON(http.StatusOK, budget) // Return the budget
	}
}

// UpdateBudgetHandler updates one of the user's budgets.
// The overlap invariant is re-checked against the new window.
func UpdateBudgetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		budgetID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget id"})
			return
		}
		var req BudgetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Not found covers both absent and not owned
		budget, err := repo.BudgetByID(db, userID, budgetID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
		// Validate amount and resolve the window; an omitted start keeps
		// the stored window start rather than moving it to today
		start, end, err := resolveBudgetWindow(req, budget.StartDate)
		if err != nil {
			// Surface the validation reason
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Verify the new category exists and belongs to the user
		if _, err := repo.CategoryByID(db, userID, req.CategoryID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		// Check the new window against the user's other budgets
		overlaps, err := repo.HasOverlappingBudget(db, userID, req.CategoryID, start, end, budget.ID)
		if err != nil {
			// If the check fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
			return
		}
		if overlaps {
			// Overlapping windows are a conflict
			c.JSON(http.StatusConflict, gin.H{"error": "A budget for this category and time period already exists"})
			return
		}
		budget.Amount = req.Amount         // Update the amount
		budget.StartDate = start           // Update the window start
		budget.EndDate = end               // Update the window end
		budget.CategoryID = req.CategoryID // Update the category
		budget.Name = req.Name             // Update the display name
		if err := db.Save(budget).Error; err != nil {
			// If saving fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
			return
		}
		// Changed budgets change the performance report
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, budget) // Return the updated budget
	}
}

// DeleteBudgetHandler deletes one of the user's budgets
func DeleteBudgetHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		budgetID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget id"})
			return
		}
		// Not found covers both absent and not owned
		budget, err := repo.BudgetByID(db, userID, budgetID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
			return
		}
		// Delete the budget
		if err := db.Delete(budget).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
			return
		}
		// Removed budgets change the performance report
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{"detail": "Budget deleted successfully"})
	}
}
