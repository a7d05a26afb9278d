package billing

import (
	"github.com/shopspring/decimal"

	"boardbill-be-svc/internal/models"
)

// ItemKey addresses one line item of one bill
type ItemKey struct {
	BillID   string          `json:"bill_id"`
	ItemType models.ItemType `json:"item_type"`
}

// Selection is the set of line items a boarder has picked for payment,
// possibly spanning multiple cycles
type Selection map[ItemKey]struct{}

// NewSelection builds a selection from a list of item keys
func NewSelection(items []ItemKey) Selection {
	sel := make(Selection, len(items))
	for _, it := range items {
		sel[it] = struct{}{}
	}
	return sel
}

// Has reports whether the item is selected
func (s Selection) Has(item ItemKey) bool {
	_, ok := s[item]
	return ok
}

// Toggle adds the item if absent, removes it if present
func (s Selection) Toggle(item ItemKey) {
	if s.Has(item) {
		delete(s, item)
		return
	}
	s[item] = struct{}{}
}

// IsSelectable reports whether a line item may enter a payment submission.
// Items already PENDING or PAID are excluded, and a zero amount means the
// item was not billed this cycle.
func IsSelectable(b *models.IndividualBill, t models.ItemType) bool {
	return t.Status(b) == models.StatusUnpaid && t.Amount(b).IsPositive()
}

// SelectableItems lists every line item across the given bills that a
// boarder may currently select
func SelectableItems(bills []*models.IndividualBill) []ItemKey {
	var items []ItemKey
	for _, b := range bills {
		for _, t := range models.AllItemTypes {
			if IsSelectable(b, t) {
				items = append(items, ItemKey{BillID: b.ID, ItemType: t})
			}
		}
	}
	return items
}

// Total sums the amounts of the selected items over the given bills.
// Selected keys that do not match any bill contribute nothing.
func (s Selection) Total(bills []*models.IndividualBill) decimal.Decimal {
	byID := make(map[string]*models.IndividualBill, len(bills))
	for _, b := range bills {
		byID[b.ID] = b
	}

	total := decimal.Zero
	for item := range s {
		b, ok := byID[item.BillID]
		if !ok {
			continue
		}
		total = total.Add(item.ItemType.Amount(b))
	}
	return total
}
