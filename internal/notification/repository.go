package notification

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateInApp(ctx context.Context, n *InAppNotification) error
	ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error)
	MarkInAppAsRead(ctx context.Context, id uint, userID uint) error
	CountUnread(ctx context.Context, userID uint) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateInApp(ctx context.Context, n *InAppNotification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListInAppByUser(ctx context.Context, userID uint, limit int) ([]InAppNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var items []InAppNotification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *repository) MarkInAppAsRead(ctx context.Context, id uint, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&InAppNotification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
