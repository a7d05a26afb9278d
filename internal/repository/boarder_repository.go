package repository

import (
	"gorm.io/gorm"

	"boardbill-be-svc/internal/models"
)

// BoarderRepository defines the interface for boarder profile data operations
type BoarderRepository interface {
	GetByID(id string) (*models.Boarder, error)
	GetFullBoarders() ([]*models.Boarder, error)
}

// boarderRepository implements BoarderRepository
type boarderRepository struct {
	db *gorm.DB
}

// NewBoarderRepository creates a new instance of BoarderRepository
func NewBoarderRepository(db *gorm.DB) BoarderRepository {
	return &boarderRepository{
		db: db,
	}
}

// GetByID retrieves a boarder profile by ID
func (r *boarderRepository) GetByID(id string) (*models.Boarder, error) {
	var boarder models.Boarder

	err := r.db.Where("id = ?", id).First(&boarder).Error
	if err != nil {
		return nil, err
	}

	return &boarder, nil
}

// GetFullBoarders retrieves all boarders that receive auto-generated bills
func (r *boarderRepository) GetFullBoarders() ([]*models.Boarder, error) {
	var boarders []*models.Boarder

	err := r.db.Where("bill_type = ?", models.BillTypeFull).Find(&boarders).Error
	if err != nil {
		return nil, err
	}

	return boarders, nil
}
