package board

import (
	"time"

	"github.com/sharath018/property-board-backend/internal/property"
)

// Board target kinds
const (
	BoardForTenant = "tenant"
	BoardForBuyer  = "buyer"
)

// Board is a curated property list an agent shares with exactly one
// tenant or buyer. Status flips to true when the board is finalized.
type Board struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	PropertyAgentID uint   `gorm:"not null;index" json:"property_agent_id"`
	TenantID        *uint  `gorm:"index" json:"tenant_id,omitempty"`
	BuyerID         *uint  `gorm:"index" json:"buyer_id,omitempty"`
	BoardFor        string `gorm:"size:10;default:'tenant'" json:"board_for"`
	Key             string `gorm:"size:32;not null" json:"key"`
	Status          bool   `gorm:"default:false" json:"status"`

	Properties []property.Property `gorm:"many2many:board_properties" json:"properties,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Board model
func (Board) TableName() string {
	return "boards"
}

// TargetID returns the identity the board is shared with, regardless of
// whether the board targets a tenant or a buyer. Ledger records key on
// this value.
func (b *Board) TargetID() uint {
	if b.BoardFor == BoardForBuyer && b.BuyerID != nil {
		return *b.BuyerID
	}
	if b.TenantID != nil {
		return *b.TenantID
	}
	if b.BuyerID != nil {
		return *b.BuyerID
	}
	return 0
}

// BoardProperty is the membership row behind the board/property set.
// The composite primary key gives set-add semantics: re-adding a
// property is a no-op.
type BoardProperty struct {
	BoardID    uint      `gorm:"primaryKey" json:"board_id"`
	PropertyID uint      `gorm:"primaryKey" json:"property_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the BoardProperty model
func (BoardProperty) TableName() string {
	return "board_properties"
}
