package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle represents the billing_cycles table: one calendar month's
// aggregate utility totals and deadlines
type BillingCycle struct {
	ID                  string          `json:"id" gorm:"type:uuid;primaryKey"`
	MonthKey            string          `json:"month_key" gorm:"column:month_key;uniqueIndex;not null"`
	MonthName           string          `json:"month_name" gorm:"column:month_name"`
	TotalElectricity    decimal.Decimal `json:"total_electricity" gorm:"column:total_electricity;type:numeric"`
	TotalWater          decimal.Decimal `json:"total_water" gorm:"column:total_water;type:numeric"`
	TotalInternet       decimal.Decimal `json:"total_internet" gorm:"column:total_internet;type:numeric"`
	DeadlineRent        *time.Time      `json:"deadline_rent" gorm:"column:deadline_rent;type:date"`
	DeadlineWater       *time.Time      `json:"deadline_water" gorm:"column:deadline_water;type:date"`
	DeadlineElectricity *time.Time      `json:"deadline_electricity" gorm:"column:deadline_electricity;type:date"`
	DeadlineInternet    *time.Time      `json:"deadline_internet" gorm:"column:deadline_internet;type:date"`
	IsPublished         bool            `json:"is_published" gorm:"column:is_published"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// TableName sets the insert table name for BillingCycle
func (BillingCycle) TableName() string {
	return "billing_cycles"
}
