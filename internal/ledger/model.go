package ledger

import (
	"time"
)

// SharedProperty is one recipient's interaction record for a property
// distributed through a board. Boards targeting a buyer store the buyer
// id in TenantID; the ledger always keys on the board's target.
type SharedProperty struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BoardID    uint `gorm:"not null;uniqueIndex:idx_shared_board_property_tenant" json:"board_id"`
	PropertyID uint `gorm:"not null;uniqueIndex:idx_shared_board_property_tenant;index" json:"property_id"`
	TenantID   uint `gorm:"not null;uniqueIndex:idx_shared_board_property_tenant;index" json:"tenant_id"`

	ViewedAt      *time.Time `json:"viewed_at"`
	IsShortlisted bool       `gorm:"default:false" json:"is_shortlisted"`
	ShortListedAt *time.Time `json:"short_listed_at"`
	SharedAt      *time.Time `json:"shared_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the SharedProperty model
func (SharedProperty) TableName() string {
	return "shared_properties"
}
