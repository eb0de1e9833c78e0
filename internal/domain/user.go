package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`          // Primary key
	Email    string `gorm:"unique;not null" json:"email"`  // Unique email address
	Password string `gorm:"not null" json:"-"`             // Hashed password, never serialized
	IsActive bool   `gorm:"default:true" json:"is_active"` // Activation flag
}
