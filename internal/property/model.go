package property

import (
	"time"

	"gorm.io/datatypes"

	"github.com/sharath018/property-board-backend/internal/ledger"
)

// Listing status values
const (
	StatusNew      = "New"
	StatusPending  = "Pending"
	StatusVerified = "Verified"
)

// Close-listing status values
const (
	CloseStatusRented   = "RentedOut"
	CloseStatusSold     = "Sold"
	CloseStatusDelisted = "Delisted"
)

// Property is the catalog entry for one physical listing. The location
// key (house + society + pin code) identifies it across submissions and
// carries a composite unique index so concurrent first submissions
// cannot create two rows for the same location.
type Property struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HouseName   string `gorm:"not null;uniqueIndex:idx_properties_location" json:"house_name"`
	SocietyName string `gorm:"not null;uniqueIndex:idx_properties_location" json:"society_name"`
	PinCode     string `gorm:"not null;uniqueIndex:idx_properties_location" json:"pin_code"`

	Status     string         `gorm:"size:20;default:'New'" json:"status"`
	TourLink3D string         `json:"tour_link_3d"`
	Images     datatypes.JSON `gorm:"type:jsonb" json:"images"`

	CloseListingStatus  string         `gorm:"size:20" json:"close_listing_status,omitempty"`
	CloseListingDetails datatypes.JSON `gorm:"type:jsonb" json:"close_listing_details,omitempty"`

	PropertyDetails  []PropertyDetail        `gorm:"foreignKey:PropertyID" json:"property_details,omitempty"`
	SharedProperties []ledger.SharedProperty `gorm:"foreignKey:PropertyID" json:"shared_properties,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}

// PropertyDetail is one agent's submission for a location. Append-only:
// details are never updated once created, new submissions get a new
// version number instead. Version numbers are unique per property, so
// two writers racing to the same next version cannot both land.
type PropertyDetail struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	PropertyID      uint `gorm:"not null;uniqueIndex:idx_details_property_version;index:idx_details_property_agent" json:"property_id"`
	PropertyAgentID uint `gorm:"not null;index:idx_details_property_agent" json:"property_agent_id"`
	Version         int  `gorm:"not null;uniqueIndex:idx_details_property_version" json:"version"`

	Title         string         `json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	Bedrooms      int            `json:"bedrooms"`
	Bathrooms     int            `json:"bathrooms"`
	RentAmount    float64        `json:"rent_amount"`
	DepositAmount float64        `json:"deposit_amount"`
	Furnished     string         `gorm:"size:20" json:"furnished"`
	Extras        datatypes.JSON `gorm:"type:jsonb" json:"extras,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the PropertyDetail model
func (PropertyDetail) TableName() string {
	return "property_details"
}

// AssignedProperty links a property to the field agent verifying it.
// The unique index on PropertyID replaces the old existence check, so
// concurrent assignment requests cannot both succeed.
type AssignedProperty struct {
	ID              uint `gorm:"primaryKey" json:"id"`
	PropertyID      uint `gorm:"not null;uniqueIndex" json:"property_id"`
	FieldAgentID    uint `gorm:"not null;index" json:"field_agent_id"`
	PropertyAgentID uint `gorm:"not null" json:"property_agent_id"`

	Property Property `gorm:"foreignKey:PropertyID" json:"property,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the AssignedProperty model
func (AssignedProperty) TableName() string {
	return "assigned_properties"
}
