package response

import (
	"time"

	"boardbill-be-svc/internal/models"
)

// LineItemView is one utility line item rendered for a client. Amounts are
// rounded to two decimal places here, at display time only.
type LineItemView struct {
	Type       models.ItemType      `json:"type"`
	Amount     string               `json:"amount"`
	Status     models.PaymentStatus `json:"status"`
	Deadline   *time.Time           `json:"deadline,omitempty"`
	Selectable bool                 `json:"selectable"`
}

// BoarderBillView is one bill as shown on the boarder's own billing page
type BoarderBillView struct {
	BillID        string                `json:"bill_id"`
	MonthKey      string                `json:"month_key"`
	MonthName     string                `json:"month_name"`
	Items         []LineItemView        `json:"items"`
	TotalDue      string                `json:"total_due"`
	ProofURL      *string               `json:"proof_url,omitempty"`
	PaymentMethod *models.PaymentMethod `json:"payment_method,omitempty"`
}

// PendingBillView is one bill with pending items as shown on the admin
// review screen
type PendingBillView struct {
	BillID        string                `json:"bill_id"`
	BoarderName   string                `json:"boarder_name"`
	RoomNumber    string                `json:"room_number"`
	MonthName     string                `json:"month_name"`
	PendingItems  []LineItemView        `json:"pending_items"`
	ProofURL      *string               `json:"proof_url,omitempty"`
	PaymentMethod *models.PaymentMethod `json:"payment_method,omitempty"`
}
