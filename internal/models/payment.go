package models

// PaymentStatus is the payment state of a single line item
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "UNPAID"
	StatusPending PaymentStatus = "PENDING"
	StatusPaid    PaymentStatus = "PAID"
)

// CanTransitionTo reports whether the state machine permits moving from s to
// next. The only legal moves are UNPAID -> PENDING, PENDING -> PAID and
// PENDING -> UNPAID.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case StatusUnpaid:
		return next == StatusPending
	case StatusPending:
		return next == StatusPaid || next == StatusUnpaid
	default:
		return false
	}
}

// IsValid reports whether s is one of the known statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPending, StatusPaid:
		return true
	}
	return false
}

// PaymentMethod is how a boarder settles selected line items
type PaymentMethod string

const (
	MethodCash  PaymentMethod = "CASH"
	MethodGCash PaymentMethod = "GCASH"
)

// IsValid reports whether m is one of the known methods
func (m PaymentMethod) IsValid() bool {
	return m == MethodCash || m == MethodGCash
}

// RequiresProof reports whether the method needs an uploaded receipt
func (m PaymentMethod) RequiresProof() bool {
	return m == MethodGCash
}

// Decision is the admin verdict on a pending line item
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

// IsValid reports whether d is one of the known decisions
func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// Status returns the payment status a decision resolves to. Approval settles
// the item, rejection sends it back for resubmission.
func (d Decision) Status() PaymentStatus {
	if d == DecisionApprove {
		return StatusPaid
	}
	return StatusUnpaid
}
