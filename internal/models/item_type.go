package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ItemType identifies one utility line item inside a bill. Keeping this a
// closed set means an unknown item name is a parse error up front instead of
// a silent no-op somewhere near the database.
type ItemType string

const (
	ItemRent        ItemType = "rent"
	ItemWater       ItemType = "water"
	ItemElectricity ItemType = "electricity"
	ItemInternet    ItemType = "internet"
)

// AllItemTypes lists every line item in display order
var AllItemTypes = []ItemType{ItemRent, ItemInternet, ItemElectricity, ItemWater}

// ParseItemType validates a raw item type string
func ParseItemType(raw string) (ItemType, error) {
	switch ItemType(raw) {
	case ItemRent, ItemWater, ItemElectricity, ItemInternet:
		return ItemType(raw), nil
	}
	return "", fmt.Errorf("unknown item type %q", raw)
}

// Amount returns the bill's amount for this line item
func (t ItemType) Amount(b *IndividualBill) decimal.Decimal {
	switch t {
	case ItemRent:
		return b.AmountRent
	case ItemWater:
		return b.AmountWater
	case ItemElectricity:
		return b.AmountElectricity
	case ItemInternet:
		return b.AmountInternet
	}
	return decimal.Zero
}

// Status returns the bill's payment status for this line item
func (t ItemType) Status(b *IndividualBill) PaymentStatus {
	switch t {
	case ItemRent:
		return b.StatusRent
	case ItemWater:
		return b.StatusWater
	case ItemElectricity:
		return b.StatusElectricity
	case ItemInternet:
		return b.StatusInternet
	}
	return ""
}

// SetStatus writes the payment status for this line item on the bill
func (t ItemType) SetStatus(b *IndividualBill, s PaymentStatus) {
	switch t {
	case ItemRent:
		b.StatusRent = s
	case ItemWater:
		b.StatusWater = s
	case ItemElectricity:
		b.StatusElectricity = s
	case ItemInternet:
		b.StatusInternet = s
	}
}

// StatusColumn returns the database column holding this item's status
func (t ItemType) StatusColumn() string {
	switch t {
	case ItemRent:
		return "status_rent"
	case ItemWater:
		return "status_water"
	case ItemElectricity:
		return "status_electricity"
	case ItemInternet:
		return "status_internet"
	}
	return ""
}

// Deadline returns the cycle's due date for this line item
func (t ItemType) Deadline(c *BillingCycle) *time.Time {
	switch t {
	case ItemRent:
		return c.DeadlineRent
	case ItemWater:
		return c.DeadlineWater
	case ItemElectricity:
		return c.DeadlineElectricity
	case ItemInternet:
		return c.DeadlineInternet
	}
	return nil
}
