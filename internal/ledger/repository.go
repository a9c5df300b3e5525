package ledger

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateIfAbsent inserts a ledger record unless one already exists
	// for the same (board, property, tenant). Returns true when a row
	// was actually created.
	CreateIfAbsent(rec *SharedProperty) (bool, error)

	FindByIDs(ids []uint) ([]SharedProperty, error)
	FindByProperty(propertyID uint) ([]SharedProperty, error)
	FindByPropertyAndTenant(propertyID, tenantID uint) ([]SharedProperty, error)
	FindShortlistedByTenant(tenantID uint) ([]SharedProperty, error)

	// Bulk updates scoped by property + tenant. All of them return the
	// number of rows touched; zero rows is a valid no-op.
	MarkViewed(propertyID, tenantID uint, at time.Time) (int64, error)
	MarkShortlisted(propertyID, tenantID uint, at time.Time) (int64, error)
	StampShared(propertyID, tenantID uint, at time.Time) (int64, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) CreateIfAbsent(rec *SharedProperty) (bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "board_id"}, {Name: "property_id"}, {Name: "tenant_id"}},
		DoNothing: true,
	}).Create(rec)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) FindByIDs(ids []uint) ([]SharedProperty, error) {
	var records []SharedProperty
	err := r.db.Where("id IN ?", ids).Order("id").Find(&records).Error
	return records, err
}

func (r *repository) FindByProperty(propertyID uint) ([]SharedProperty, error) {
	var records []SharedProperty
	err := r.db.Where("property_id = ?", propertyID).Order("created_at").Find(&records).Error
	return records, err
}

func (r *repository) FindByPropertyAndTenant(propertyID, tenantID uint) ([]SharedProperty, error) {
	var records []SharedProperty
	err := r.db.
		Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		Order("created_at").
		Find(&records).Error
	return records, err
}

func (r *repository) FindShortlistedByTenant(tenantID uint) ([]SharedProperty, error) {
	var records []SharedProperty
	err := r.db.
		Where("tenant_id = ? AND is_shortlisted = ?", tenantID, true).
		Order("short_listed_at DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) MarkViewed(propertyID, tenantID uint, at time.Time) (int64, error) {
	res := r.db.Model(&SharedProperty{}).
		Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		Updates(map[string]interface{}{
			"viewed_at":  at,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkShortlisted(propertyID, tenantID uint, at time.Time) (int64, error) {
	res := r.db.Model(&SharedProperty{}).
		Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		Updates(map[string]interface{}{
			"short_listed_at": at,
			"is_shortlisted":  true,
			"updated_at":      time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) StampShared(propertyID, tenantID uint, at time.Time) (int64, error) {
	res := r.db.Model(&SharedProperty{}).
		Where("property_id = ? AND tenant_id = ?", propertyID, tenantID).
		Updates(map[string]interface{}{
			"shared_at":  at,
			"updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}
