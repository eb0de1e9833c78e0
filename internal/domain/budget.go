package domain

import "time" // Budget window dates

// Budget Model
type Budget struct {
	ID         uint      `gorm:"primaryKey" json:"id"`                 // Primary key
	Amount     float64   `gorm:"not null" json:"amount"`               // Budgeted amount, positive
	StartDate  time.Time `gorm:"type:date;not null" json:"start_date"` // Window start, defaults to creation date
	EndDate    time.Time `gorm:"type:date;not null" json:"end_date"`   // Window end
	CategoryID uint      `gorm:"not null;index" json:"category_id"`    // Foreign key to Category
	UserID     uint      `gorm:"not null;index" json:"user_id"`        // Foreign key to the owning User
	Name       string    `json:"name"`                                 // Optional display name
}
