package models

import (
	"time"
)

// BillTypeFull marks boarders who receive auto-generated bills on every
// reconciliation. Other bill types are skipped entirely.
const BillTypeFull = "FULL"

// Boarder represents the profiles table
type Boarder struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey"`
	FullName   string    `json:"full_name" gorm:"column:full_name"`
	RoomNumber string    `json:"room_number" gorm:"column:room_number"`
	BillType   string    `json:"bill_type" gorm:"column:bill_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Boarder
func (Boarder) TableName() string {
	return "profiles"
}
