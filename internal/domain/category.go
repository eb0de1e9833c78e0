package domain

// Category Model
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Name        string `gorm:"not null;index" json:"name"`    // Category name, unique per user
	Description string `json:"description"`                   // Optional description
	UserID      uint   `gorm:"not null;index" json:"user_id"` // Foreign key to the owning User
}
