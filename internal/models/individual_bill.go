package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndividualBill represents the individual_bills table: one boarder's
// apportioned share of a cycle, with independent per-item payment status
type IndividualBill struct {
	ID                string          `json:"id" gorm:"type:uuid;primaryKey"`
	UserID            string          `json:"user_id" gorm:"column:user_id;uniqueIndex:idx_bill_user_cycle;not null"`
	CycleID           string          `json:"cycle_id" gorm:"column:cycle_id;uniqueIndex:idx_bill_user_cycle;not null"`
	AmountRent        decimal.Decimal `json:"amount_rent" gorm:"column:amount_rent;type:numeric"`
	AmountWater       decimal.Decimal `json:"amount_water" gorm:"column:amount_water;type:numeric"`
	AmountElectricity decimal.Decimal `json:"amount_electricity" gorm:"column:amount_electricity;type:numeric"`
	AmountInternet    decimal.Decimal `json:"amount_internet" gorm:"column:amount_internet;type:numeric"`
	StatusRent        PaymentStatus   `json:"status_rent" gorm:"column:status_rent;default:UNPAID"`
	StatusWater       PaymentStatus   `json:"status_water" gorm:"column:status_water;default:UNPAID"`
	StatusElectricity PaymentStatus   `json:"status_electricity" gorm:"column:status_electricity;default:UNPAID"`
	StatusInternet    PaymentStatus   `json:"status_internet" gorm:"column:status_internet;default:UNPAID"`
	TotalDue          decimal.Decimal `json:"total_due" gorm:"column:total_due;type:numeric"`
	ProofURL          *string         `json:"proof_url" gorm:"column:proof_url"`
	PaymentMethod     *PaymentMethod  `json:"payment_method" gorm:"column:payment_method"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	Cycle   *BillingCycle `json:"cycle,omitempty" gorm:"foreignKey:CycleID"`
	Boarder *Boarder      `json:"boarder,omitempty" gorm:"foreignKey:UserID"`
}

// TableName sets the insert table name for IndividualBill
func (IndividualBill) TableName() string {
	return "individual_bills"
}

// RecomputeTotalDue replaces TotalDue with the sum of the four current
// amounts. It must be called after any amount changes; the total is never
// incremented in place.
func (b *IndividualBill) RecomputeTotalDue() {
	b.TotalDue = b.AmountRent.
		Add(b.AmountInternet).
		Add(b.AmountElectricity).
		Add(b.AmountWater)
}

// HasPendingItem reports whether any line item awaits an admin decision
func (b *IndividualBill) HasPendingItem() bool {
	for _, t := range AllItemTypes {
		if t.Status(b) == StatusPending {
			return true
		}
	}
	return false
}
