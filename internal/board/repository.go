package board

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Create stores the board and its initial membership rows in one
	// transaction.
	Create(b *Board, propertyIDs []uint) error

	FindByID(id uint) (*Board, error)
	FindByAgent(agentID uint) ([]Board, error)

	// AddProperty inserts a membership row; duplicates are swallowed by
	// the composite primary key. Returns the reloaded board.
	AddProperty(boardID, propertyID uint) (*Board, error)

	// SetStatus updates the finalized flag and returns the reloaded
	// board with its property set.
	SetStatus(boardID uint, status bool) (*Board, error)
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(b *Board, propertyIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Properties").Create(b).Error; err != nil {
			return err
		}
		for _, pid := range propertyIDs {
			row := BoardProperty{BoardID: b.ID, PropertyID: pid}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) FindByID(id uint) (*Board, error) {
	var b Board
	err := r.db.
		Preload("Properties").
		Preload("Properties.PropertyDetails").
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByAgent(agentID uint) ([]Board, error) {
	var boards []Board
	err := r.db.
		Preload("Properties").
		Where("property_agent_id = ?", agentID).
		Order("created_at DESC").
		Find(&boards).Error
	return boards, err
}

func (r *repository) AddProperty(boardID, propertyID uint) (*Board, error) {
	var b Board
	if err := r.db.First(&b, boardID).Error; err != nil {
		return nil, err
	}

	row := BoardProperty{BoardID: boardID, PropertyID: propertyID}
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, err
	}

	return r.FindByID(boardID)
}

func (r *repository) SetStatus(boardID uint, status bool) (*Board, error) {
	res := r.db.Model(&Board{}).
		Where("id = ?", boardID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(boardID)
}

// isNotFound reports whether err is the store's missing-row error.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
