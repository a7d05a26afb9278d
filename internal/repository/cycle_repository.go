package repository

import (
	"gorm.io/gorm"

	"boardbill-be-svc/internal/models"
)

// CycleRepository defines the interface for billing cycle data operations
type CycleRepository interface {
	GetByID(id string) (*models.BillingCycle, error)
	GetByMonthKey(monthKey string) (*models.BillingCycle, error)
	Create(cycle *models.BillingCycle) error
	Update(cycle *models.BillingCycle) error
	List() ([]*models.BillingCycle, error)
}

// cycleRepository implements CycleRepository
type cycleRepository struct {
	db *gorm.DB
}

// NewCycleRepository creates a new instance of CycleRepository
func NewCycleRepository(db *gorm.DB) CycleRepository {
	return &cycleRepository{
		db: db,
	}
}

// GetByID retrieves a billing cycle by ID
func (r *cycleRepository) GetByID(id string) (*models.BillingCycle, error) {
	var cycle models.BillingCycle

	err := r.db.Where("id = ?", id).First(&cycle).Error
	if err != nil {
		return nil, err
	}

	return &cycle, nil
}

// GetByMonthKey retrieves the billing cycle for a month key, if any
func (r *cycleRepository) GetByMonthKey(monthKey string) (*models.BillingCycle, error) {
	var cycle models.BillingCycle

	err := r.db.Where("month_key = ?", monthKey).First(&cycle).Error
	if err != nil {
		return nil, err
	}

	return &cycle, nil
}

// Create inserts a new billing cycle
func (r *cycleRepository) Create(cycle *models.BillingCycle) error {
	return r.db.Create(cycle).Error
}

// Update persists all fields of an already-loaded billing cycle
func (r *cycleRepository) Update(cycle *models.BillingCycle) error {
	return r.db.Save(cycle).Error
}

// List retrieves all billing cycles, newest first
func (r *cycleRepository) List() ([]*models.BillingCycle, error) {
	var cycles []*models.BillingCycle

	err := r.db.Order("created_at DESC").Find(&cycles).Error
	if err != nil {
		return nil, err
	}

	return cycles, nil
}
