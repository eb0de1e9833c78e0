package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"finance_tracker/internal/api"        // Custom package for API handlers
	"finance_tracker/internal/config"     // Custom package for configuration
	"finance_tracker/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Per-client sliding-window rate limit on every route
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPM)
	defer limiter.Stop()
	r.Use(limiter.Middleware())

	// Welcome endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Welcome to the Personal Finance API!"})
	})

	// Auth routes
	r.POST("/user", api.RegisterHandler(db))              // Registration endpoint
	r.POST("/login", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint

	// Current user route (protected by JWT)
	userGroup := r.Group("/user")
	userGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	userGroup.GET("/me", api.MeHandler(db)) // Current user endpoint

	// Category routes (protected by JWT)
	categoryGroup := r.Group("/categories")
	categoryGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	categoryGroup.POST("", api.CreateCategoryHandler(db, redisClient))       // Create category endpoint
	categoryGroup.GET("", api.ListCategoriesHandler(db))                     // List categories endpoint
	categoryGroup.GET("/:id", api.GetCategoryHandler(db))                    // Get category endpoint
	categoryGroup.PUT("/:id", api.UpdateCategoryHandler(db, redisClient))    // Update category endpoint
	categoryGroup.DELETE("/:id", api.DeleteCategoryHandler(db, redisClient)) // Delete category endpoint

	// Transaction routes (protected by JWT)
	transactionGroup := r.Group("/transactions")
	transactionGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	transactionGroup.POST("", api.CreateTransactionHandler(db, redisClient))       // Create transaction endpoint
	transactionGroup.GET("", api.ListTransactionsHandler(db))                      // List transactions endpoint
	transactionGroup.GET("/:id", api.GetTransactionHandler(db))                    // Get transaction endpoint
	transactionGroup.PUT("/:id", api.UpdateTransactionHandler(db, redisClient))    // Update transaction endpoint
	transactionGroup.DELETE("/:id", api.DeleteTransactionHandler(db, redisClient)) // Delete transaction endpoint

	// Budget routes (protected by JWT)
	budgetGroup := r.Group("/budgets")
	budgetGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	budgetGroup.POST("", api.CreateBudgetHandler(db, redisClient))       // Create budget endpoint
	budgetGroup.GET("", api.ListBudgetsHandler(db))                      // List budgets endpoint
	budgetGroup.GET("/status", api.BudgetStatusHandler(db))              // Budget status endpoint
	budgetGroup.GET("/:id", api.GetBudgetHandler(db))                    // Get budget endpoint
	budgetGroup.PUT("/:id", api.UpdateBudgetHandler(db, redisClient))    // Update budget endpoint
	budgetGroup.DELETE("/:id", api.DeleteBudgetHandler(db, redisClient)) // Delete budget endpoint

	// Report routes (protected by JWT, cached in Redis)
	reportGroup := r.Group("/reports")
	reportGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	reportGroup.GET("/spending-by-category", api.SpendingByCategoryHandler(db, redisClient)) // Spend by category endpoint
	reportGroup.GET("/monthly-spending", api.MonthlySpendingHandler(db, redisClient))        // Monthly spending endpoint
	reportGroup.GET("/transaction-trends", api.TransactionTrendsHandler(db, redisClient))    // Transaction trends endpoint
	reportGroup.GET("/budget-performance", api.BudgetPerformanceHandler(db, redisClient))    // Budget performance endpoint
	reportGroup.GET("/spending-insights", api.SpendingInsightsHandler(db, redisClient))      // Spending insights endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
