package reports

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetBoardActivity(ctx context.Context, filter ReportFilter) ([]BoardActivityRow, error)
	GetShortlists(ctx context.Context, filter ReportFilter) ([]ShortlistRow, error)
	GetCatalog(ctx context.Context, filter ReportFilter) ([]CatalogRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBoardActivity(ctx context.Context, filter ReportFilter) ([]BoardActivityRow, error) {
	var rows []BoardActivityRow
	q := r.db.WithContext(ctx).
		Table("shared_properties sp").
		Select(`sp.id AS ledger_id, sp.board_id, sp.property_id,
			p.house_name, p.society_name, p.pin_code,
			sp.tenant_id, COALESCE(u.full_name, '') AS tenant_name,
			sp.shared_at, sp.viewed_at, sp.is_shortlisted, sp.short_listed_at,
			sp.created_at`).
		Joins("JOIN properties p ON p.id = sp.property_id").
		Joins("JOIN boards b ON b.id = sp.board_id").
		Joins("LEFT JOIN users u ON u.id = sp.tenant_id").
		Order("sp.created_at DESC")

	if filter.AgentID != nil {
		q = q.Where("b.property_agent_id = ?", *filter.AgentID)
	}
	if filter.TenantID != nil {
		q = q.Where("sp.tenant_id = ?", *filter.TenantID)
	}
	if filter.FromDate != nil {
		q = q.Where("sp.created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("sp.created_at <= ?", *filter.ToDate)
	}

	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) GetShortlists(ctx context.Context, filter ReportFilter) ([]ShortlistRow, error) {
	var rows []ShortlistRow
	q := r.db.WithContext(ctx).
		Table("shared_properties sp").
		Select(`sp.tenant_id, COALESCE(u.full_name, '') AS tenant_name,
			sp.property_id, p.house_name, p.society_name, p.pin_code,
			sp.short_listed_at`).
		Joins("JOIN properties p ON p.id = sp.property_id").
		Joins("LEFT JOIN users u ON u.id = sp.tenant_id").
		Where("sp.is_shortlisted = ?", true).
		Order("sp.short_listed_at DESC")

	if filter.TenantID != nil {
		q = q.Where("sp.tenant_id = ?", *filter.TenantID)
	}
	if filter.FromDate != nil {
		q = q.Where("sp.short_listed_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("sp.short_listed_at <= ?", *filter.ToDate)
	}

	err := q.Scan(&rows).Error
	return rows, err
}

func (r *repository) GetCatalog(ctx context.Context, filter ReportFilter) ([]CatalogRow, error) {
	var rows []CatalogRow
	q := r.db.WithContext(ctx).
		Table("properties p").
		Select(`p.id AS property_id, p.house_name, p.society_name, p.pin_code,
			p.status, COUNT(pd.id) AS versions, p.created_at`).
		Joins("LEFT JOIN property_details pd ON pd.property_id = p.id").
		Group("p.id, p.house_name, p.society_name, p.pin_code, p.status, p.created_at").
		Order("p.created_at DESC")

	if filter.FromDate != nil {
		q = q.Where("p.created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("p.created_at <= ?", *filter.ToDate)
	}

	err := q.Scan(&rows).Error
	return rows, err
}
