package auth

import (
	"time"

	"gorm.io/gorm"
)

// Role names seeded at startup
const (
	RolePropertyAgent = "propertyagent"
	RoleFieldAgent    = "fieldagent"
	RoleTenant        = "tenant"
	RoleBuyer         = "buyer"
)

// User represents a user in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	FullName     string         `gorm:"column:full_name;size:100;not null" json:"name"`
	Email        string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string         `gorm:"size:20" json:"phone"`
	PasswordHash string         `gorm:"column:password_hash;size:255;not null" json:"-"`
	RoleID       uint           `gorm:"column:role_id" json:"-"`
	Role         UserRole       `gorm:"foreignKey:RoleID" json:"role"`
	Status       string         `gorm:"default:active" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// UserRole represents an assignable role
type UserRole struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoleName    string    `gorm:"size:50;uniqueIndex;not null" json:"role_name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the UserRole model
func (UserRole) TableName() string {
	return "user_roles"
}
