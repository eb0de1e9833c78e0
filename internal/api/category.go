package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/repo"   // Owner-scoped queries
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CategoryRequest represents a create or update request for a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"` // Category name, unique per user
	Description string `json:"description"`             // Optional description
}

// pathID parses the :id path parameter
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id")) // Parse the path segment
	if err != nil || id <= 0 {
		return 0, false // Not a usable id
	}
	return uint(id), true
}

// listParams parses skip/limit query parameters with defaults
func listParams(c *gin.Context) (int, int) {
	skip := 0    // Default offset
	limit := 100 // Default page size
	if s := c.Query("skip"); s != "" {
		// Convert skip to integer
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v // Set skip if valid
		}
	}
	if l := c.Query("limit"); l != "" {
		// Convert limit to integer
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v // Set limit if valid
		}
	}
	return skip, limit
}

// CreateCategoryHandler creates a category for the authenticated user
func CreateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		name := strings.TrimSpace(req.Name) // Normalize the name
		if name == "" {
			// Whitespace-only names are rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name cannot be blank"})
			return
		}
		// Check if a category with the same name already exists for this user
		if _, err := repo.CategoryByName(db, userID, name); err == nil {
			// If it does, return conflict
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}
		// Create the category
		category := domain.Category{Name: name, Description: req.Description, UserID: userID}
		if err := db.Create(&category).Error; err != nil {
			// Log the error with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"name":    name,        // Category name
				"error":   err.Error(), // Error message
			}).Error("Failed to create category") // Log failure
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		// Category names appear in report breakdowns
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		// Return the created category
		c.JSON(http.StatusCreated, category)
	}
}

// ListCategoriesHandler returns the authenticated user's categories
func ListCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		skip, limit := listParams(c) // Pagination parameters
		// Only return categories belonging to the current user
		categories, err := repo.ListCategories(db, userID, skip, limit)
		if err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories) // Return the categories
	}
}

// GetCategoryHandler returns one of the user's categories by id
func GetCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		categoryID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		// Not found covers both absent and not owned
		category, err := repo.CategoryByID(db, userID, categoryID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusOK, category) // Return the category
	}
}

// UpdateCategoryHandler updates one of the user's categories
func UpdateCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		categoryID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		var req CategoryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		name := strings.TrimSpace(req.Name) // Normalize the name
		if name == "" {
			// Whitespace-only names are rejected
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category name cannot be blank"})
			return
		}
		// Not found covers both absent and not owned
		category, err := repo.CategoryByID(db, userID, categoryID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		// Renaming onto another category's name is a conflict
		if existing, err := repo.CategoryByName(db, userID, name); err == nil && existing.ID != category.ID {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}
		category.Name = name                   // Update the name
		category.Description = req.Description // Update the description
		if err := db.Save(category).Error; err != nil {
			// If saving fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		// Category names appear in report breakdowns
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, category) // Return the updated category
	}
}

// DeleteCategoryHandler deletes one of the user's categories.
// Categories still referenced by transactions or budgets are protected.
func DeleteCategoryHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		categoryID, ok := pathID(c) // Parse the path id
		if !ok {
			// If invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category id"})
			return
		}
		// Not found covers both absent and not owned
		category, err := repo.CategoryByID(db, userID, categoryID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		// Check for referencing transactions or budgets
		inUse, err := repo.CategoryInUse(db, userID, categoryID)
		if err != nil {
			// If the check fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		if inUse {
			// Referenced categories cannot be deleted
			c.JSON(http.StatusConflict, gin.H{"error": "Category is referenced by transactions or budgets"})
			return
		}
		// Delete the category
		if err := db.Delete(category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		// Category names appear in report breakdowns
		utils.InvalidateReportCache(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{"detail": "Category deleted successfully"})
	}
}
