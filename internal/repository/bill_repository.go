package repository

import (
	"gorm.io/gorm"

	"boardbill-be-svc/internal/models"
)

// BillRepository defines the interface for individual bill data operations
type BillRepository interface {
	GetByID(id string) (*models.IndividualBill, error)
	GetByUserAndCycle(userID, cycleID string) (*models.IndividualBill, error)
	Create(bill *models.IndividualBill) error
	Update(bill *models.IndividualBill) error
	UpdateItemStatus(billID string, item models.ItemType, status models.PaymentStatus) error
	SetPaymentInfo(billID string, method models.PaymentMethod, proofURL *string) error
	ListByUser(userID string) ([]*models.IndividualBill, error)
	ListByCycle(cycleID string) ([]*models.IndividualBill, error)
	ListWithPendingItems() ([]*models.IndividualBill, error)
}

// billRepository implements BillRepository
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new instance of BillRepository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{
		db: db,
	}
}

// GetByID retrieves a bill by ID
func (r *billRepository) GetByID(id string) (*models.IndividualBill, error) {
	var bill models.IndividualBill

	err := r.db.Where("id = ?", id).First(&bill).Error
	if err != nil {
		return nil, err
	}

	return &bill, nil
}

// GetByUserAndCycle retrieves a boarder's bill for one cycle, if any
func (r *billRepository) GetByUserAndCycle(userID, cycleID string) (*models.IndividualBill, error) {
	var bill models.IndividualBill

	err := r.db.Where("user_id = ? AND cycle_id = ?", userID, cycleID).First(&bill).Error
	if err != nil {
		return nil, err
	}

	return &bill, nil
}

// Create inserts a new bill
func (r *billRepository) Create(bill *models.IndividualBill) error {
	return r.db.Create(bill).Error
}

// Update persists all fields of an already-loaded bill
func (r *billRepository) Update(bill *models.IndividualBill) error {
	return r.db.Save(bill).Error
}

// UpdateItemStatus writes a single line item's status column
func (r *billRepository) UpdateItemStatus(billID string, item models.ItemType, status models.PaymentStatus) error {
	return r.db.Model(&models.IndividualBill{}).
		Where("id = ?", billID).
		Update(item.StatusColumn(), status).Error
}

// SetPaymentInfo records the payment method and optional proof URL on a bill
func (r *billRepository) SetPaymentInfo(billID string, method models.PaymentMethod, proofURL *string) error {
	updates := map[string]interface{}{
		"payment_method": method,
	}
	if proofURL != nil {
		updates["proof_url"] = *proofURL
	}

	return r.db.Model(&models.IndividualBill{}).
		Where("id = ?", billID).
		Updates(updates).Error
}

// ListByUser retrieves a boarder's bills with their cycles, newest first
func (r *billRepository) ListByUser(userID string) ([]*models.IndividualBill, error) {
	var bills []*models.IndividualBill

	err := r.db.Preload("Cycle").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// ListByCycle retrieves every bill of one cycle with boarder profiles
func (r *billRepository) ListByCycle(cycleID string) ([]*models.IndividualBill, error) {
	var bills []*models.IndividualBill

	err := r.db.Preload("Boarder").
		Where("cycle_id = ?", cycleID).
		Order("created_at ASC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// ListWithPendingItems retrieves bills holding at least one PENDING line
// item, oldest first, with boarder and cycle attached for the review screen
func (r *billRepository) ListWithPendingItems() ([]*models.IndividualBill, error) {
	var bills []*models.IndividualBill

	err := r.db.Preload("Boarder").Preload("Cycle").
		Where("status_rent = ? OR status_water = ? OR status_electricity = ? OR status_internet = ?",
			models.StatusPending, models.StatusPending, models.StatusPending, models.StatusPending).
		Order("created_at ASC").
		Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}
