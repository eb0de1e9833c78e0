package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Timestamps and date parsing

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Owner-scoped queries
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// TransactionRequest represents a create or update request for a transaction
type TransactionRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"` // Transaction amount
	Description string  `json:"description" binding:"required"` // What the money was spent on
	CategoryID  uint    `json:"category_id" binding:"required"` // Category reference
	Date        string  `json:"date"`                           // Optional, defaults to now
}

// resolveTransaction validates a request and resolves its fields.
// Validation runs before any domain entity is constructed.
func resolveTransaction(req TransactionRequest) (string, time.Time, error) {
	// Validate the amount
	if err := validateAmount(req.Amount); err != nil {
		return "", time.Time{}, err
	}
	// Validate and trim the description
	description, err := validateDescription(req.Description)
	if err != nil {
		return "", time.Time{}, err
	}
	date := time.Now() // Default to the current time
	if req.Date != "" {
		// Parse the provided date
		date, err = parseDate(req.Date)
		if err != nil {
			return "", time.Time{}, err
		}
	}
	// Future-dated transactions must never reach the reports
	if err := validateNotFuture(date); err != nil {
		return "", time.Time{}, err
	}
	return description, date, nil
}

// CreateTransactionHandler records a transaction for the authenticated user
func CreateTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate amount, description, and date
		description, date, err := resolveTransaction(req)
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
		// Create the transaction
		transaction := domain.Transaction{
			Amount:      req.Amount,     // Validated amount
			Description: description,    // Trimmed description
			CategoryID:  req.CategoryID, // Owned category
			Date:        date,           // Validated date
			UserID:      userID,         // Owner
		}
		if err := db.Create(&transaction).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id":     userID,         // User ID
				"category_id": req.CategoryID, // Category ID
				"amount":      req.Amount,     // Transaction amount
				"error":       err.Error(),    // Error message
			}).Error("Failed to create transaction") // Log failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,         // User ID
			"transaction_id": transaction.ID, // New transaction ID
			"amount":         req.Amount,     // Transaction amount
		}).Info("Transaction recorded") // Log creation
		// New spend changes every aggregation
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		// Return the created transaction
		c.JSON(http.StatusCreated, transaction)
	}
}

// ListTransactionsHandler returns a page of the user's transactions
func ListTransactionsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		page := 1      // Default page
		pageSize := 20 // Default page size
		// If page exists in query
		if p := c.Query("page"); p != "" {
			// Convert page to integer
			if v, err := strconv.Atoi(p); err == nil && v > 0 {
				page = v // Set page if valid
			}
		}
		// If page_size exists in query
		if ps := c.Query("page_size"); ps != "" {
			// Convert page_size to integer
			if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
				pageSize = v // Set page size if valid
			}
		}
		offset := (page - 1) * pageSize // Calculate offset
		// Count total transactions for pagination
		total, err := repo.CountTransactions(db, userID)
		if err != nil {
			// If counting fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count transactions"})
			return
		}
		// Fetch paginated transactions
		transactions, err := repo.ListTransactions(db, userID, offset, pageSize)
		if err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		// Calculate total pages
		totalPages := (int(total) + pageSize - 1) / pageSize
		c.JSON(http.StatusOK, gin.H{
			"transactions": transactions, // List of transactions
			"page":         page,         // Current page
			"page_size":    pageSize,     // Page size
			"total":        total,        // Total transactions
			"total_pages":  totalPages,   // Total pages
		})
	}
}

// GetTransactionHandler returns one of the user's transactions by id
func GetTransactionHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		transactionID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
			return
		}
		// Not found covers both absent and not owned
		transaction, err := repo.TransactionByID(db, userID, transactionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusOK, transaction) // Return the transaction
	}
}

// UpdateTransactionHandler updates one of the user's transactions
func UpdateTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		transactionID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate amount, description, and date
		description, date, err := resolveTransaction(req)
		if err != nil {
			// Surface the validation reason
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		// Not found covers both absent and not owned
		transaction, err := repo.TransactionByID(db, userID, transactionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		// Verify the new category exists and belongs to the user
		if _, err := repo.CategoryByID(db, userID, req.CategoryID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		transaction.Amount = req.Amount         // Update the amount
		transaction.Description = description   // Update the description
		transaction.CategoryID = req.CategoryID // Update the category
		transaction.Date = date                 // Update the date
		if err := db.Save(transaction).Error; err != nil {
			// If saving fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		// Changed spend changes every aggregation
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, transaction) // Return the updated transaction
	}
}

// DeleteTransactionHandler deletes one of the user's transactions
func DeleteTransactionHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		transactionID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
			return
		}
		// Not found covers both absent and not owned
		transaction, err := repo.TransactionByID(db, userID, transactionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		// Delete the transaction
		if err := db.Delete(transaction).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		// Removed spend changes every aggregation
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{"detail": "Transaction deleted successfully"})
	}
}
