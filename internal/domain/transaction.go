package domain

import "time" // Transaction timestamps

// Transaction Model
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`              // Primary key
	Amount      float64   `gorm:"not null" json:"amount"`            // Transaction amount, positive, two decimal places
	Description string    `gorm:"not null" json:"description"`       // What the money was spent on
	CategoryID  uint      `gorm:"not null;index" json:"category_id"` // Foreign key to Category
	Date        time.Time `gorm:"not null" json:"date"`              // When it happened, never in the future
	UserID      uint      `gorm:"not null;index" json:"user_id"`     // Foreign key to the owning User
}
