package property

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	// FindByLocation matches on the full location key. Returns
	// (nil, nil) when no catalog entry exists for the location.
	FindByLocation(houseName, societyName, pinCode string) (*Property, error)

	// CreateWithDetail creates a new catalog entry plus its first
	// detail in one transaction.
	CreateWithDetail(p *Property, d *PropertyDetail) error

	AppendDetail(d *PropertyDetail) error
	UpdateStatus(propertyID uint, status string) error
	CloseListing(propertyID uint, closeStatus string, details datatypes.JSON) (*Property, error)

	FindByID(id uint) (*Property, error)
	FindAll() ([]Property, error)

	CreateAssignment(a *AssignedProperty) error
	FindAssignmentsByFieldAgent(fieldAgentID uint) ([]AssignedProperty, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) FindByLocation(houseName, societyName, pinCode string) (*Property, error) {
	var p Property
	err := r.db.
		Preload("PropertyDetails", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_details.version")
		}).
		Where("house_name = ? AND society_name = ? AND pin_code = ?", houseName, societyName, pinCode).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) CreateWithDetail(p *Property, d *PropertyDetail) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		d.PropertyID = p.ID
		return tx.Create(d).Error
	})
}

func (r *repository) AppendDetail(d *PropertyDetail) error {
	return r.db.Create(d).Error
}

func (r *repository) UpdateStatus(propertyID uint, status string) error {
	res := r.db.Model(&Property{}).
		Where("id = ?", propertyID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CloseListing(propertyID uint, closeStatus string, details datatypes.JSON) (*Property, error) {
	res := r.db.Model(&Property{}).
		Where("id = ?", propertyID).
		Updates(map[string]interface{}{
			"close_listing_status":  closeStatus,
			"close_listing_details": details,
			"updated_at":            time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(propertyID)
}

func (r *repository) FindByID(id uint) (*Property, error) {
	var p Property
	err := r.db.
		Preload("PropertyDetails", func(db *gorm.DB) *gorm.DB {
			return db.Order("property_details.version")
		}).
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindAll() ([]Property, error) {
	var properties []Property
	err := r.db.
		Preload("PropertyDetails").
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

func (r *repository) CreateAssignment(a *AssignedProperty) error {
	return r.db.Create(a).Error
}

func (r *repository) FindAssignmentsByFieldAgent(fieldAgentID uint) ([]AssignedProperty, error) {
	var assignments []AssignedProperty
	err := r.db.
		Preload("Property").
		Preload("Property.PropertyDetails").
		Where("field_agent_id = ?", fieldAgentID).
		Order("created_at DESC").
		Find(&assignments).Error
	return assignments, err
}
