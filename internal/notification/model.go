package notification

import (
	"time"
)

// Notification categories
const (
	CategoryBoard  = "board"
	CategorySystem = "system"
)

// InAppNotification - per-user, in-app bell notifications
type InAppNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	BoardID   *uint     `gorm:"index" json:"board_id,omitempty"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Category  string    `gorm:"size:30;not null" json:"category"` // board, system
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the InAppNotification model
func (InAppNotification) TableName() string {
	return "in_app_notifications"
}
