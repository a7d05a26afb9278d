package service

import (
	"fmt"

	"boardbill-be-svc/internal/billing"
	"boardbill-be-svc/internal/models"
	"boardbill-be-svc/internal/repository"
	"boardbill-be-svc/pkg/logger"
)

// SubmitPaymentInput is one boarder's bulk payment submission: selected line
// items (possibly spanning cycles), the method, and the receipt for GCASH
type SubmitPaymentInput struct {
	UserID        string
	Items         []billing.ItemKey
	Method        models.PaymentMethod
	ProofFilename string
	ProofContent  []byte
}

// SubmitPaymentResponse reports per-item outcomes of a submission. Once the
// receipt upload succeeds, items transition independently: one failed write
// does not roll back the others.
type SubmitPaymentResponse struct {
	TotalItems     int               `json:"total_items"`
	SubmittedItems []billing.ItemKey `json:"submitted_items"`
	SkippedItems   []billing.ItemKey `json:"skipped_items,omitempty"`
	FailedItems    []billing.ItemKey `json:"failed_items,omitempty"`
	ProofURL       *string           `json:"proof_url,omitempty"`
	Errors         []string          `json:"errors,omitempty"`
}

// PaymentService defines the interface for payment operations
type PaymentService interface {
	SubmitPayment(input SubmitPaymentInput) (*SubmitPaymentResponse, error)
	DecidePayment(billID string, item models.ItemType, decision models.Decision) (*models.IndividualBill, error)
}

// paymentService implements PaymentService
type paymentService struct {
	billRepo repository.BillRepository
	storage  ReceiptStorage
	notifier Notifier
	logger   *logger.Logger
}

// NewPaymentService creates a new instance of PaymentService
func NewPaymentService(
	billRepo repository.BillRepository,
	storage ReceiptStorage,
	notifier Notifier,
	logger *logger.Logger,
) PaymentService {
	return &paymentService{
		billRepo: billRepo,
		storage:  storage,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitPayment moves the boarder's selected line items UNPAID -> PENDING.
// For GCASH the receipt is stored first and the whole submission aborts if
// storage rejects it. Items that are no longer selectable (already pending
// or paid, zero amount) are skipped rather than failed, since the selection
// may be stale by the time it arrives.
func (s *paymentService) SubmitPayment(input SubmitPaymentInput) (*SubmitPaymentResponse, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: no items selected", ErrValidation)
	}
	if !input.Method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, input.Method)
	}
	if input.Method.RequiresProof() && len(input.ProofContent) == 0 {
		return nil, fmt.Errorf("%w: %s payment requires a receipt", ErrValidation, input.Method)
	}

	resp := &SubmitPaymentResponse{TotalItems: len(input.Items)}

	// Load each referenced bill once and verify ownership before any write.
	bills := make(map[string]*models.IndividualBill)
	for _, item := range input.Items {
		if _, ok := bills[item.BillID]; ok {
			continue
		}
		bill, err := s.billRepo.GetByID(item.BillID)
		if err != nil {
			return nil, fmt.Errorf("%w: fetching bill %s: %v", ErrLookup, item.BillID, err)
		}
		if bill.UserID != input.UserID {
			return nil, fmt.Errorf("%w: bill %s", ErrForbidden, item.BillID)
		}
		bills[item.BillID] = bill
	}

	var eligible []billing.ItemKey
	for _, item := range input.Items {
		if billing.IsSelectable(bills[item.BillID], item.ItemType) {
			eligible = append(eligible, item)
		} else {
			resp.SkippedItems = append(resp.SkippedItems, item)
		}
	}
	if len(eligible) == 0 {
		return nil, fmt.Errorf("%w: none of the selected items are payable", ErrValidation)
	}

	// Upload is all-or-nothing: no transition happens unless the receipt is
	// safely stored.
	var proofURL *string
	if input.Method.RequiresProof() {
		url, err := s.storage.Save(input.UserID, input.ProofFilename, input.ProofContent)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpload, err)
		}
		proofURL = &url
	}

	touched := make(map[string]bool)
	for _, item := range eligible {
		if err := s.billRepo.UpdateItemStatus(item.BillID, item.ItemType, models.StatusPending); err != nil {
			resp.FailedItems = append(resp.FailedItems, item)
			resp.Errors = append(resp.Errors, err.Error())
			s.logger.WithError(err).WithFields(map[string]interface{}{
				"bill_id":   item.BillID,
				"item_type": item.ItemType,
			}).Error("Failed to mark item pending")
			continue
		}
		resp.SubmittedItems = append(resp.SubmittedItems, item)
		touched[item.BillID] = true
	}

	for billID := range touched {
		if err := s.billRepo.SetPaymentInfo(billID, input.Method, proofURL); err != nil {
			resp.Errors = append(resp.Errors, err.Error())
			s.logger.WithError(err).WithField("bill_id", billID).Error("Failed to record payment info")
			continue
		}
		s.notifier.BillChanged(billID)
	}

	resp.ProofURL = proofURL

	s.logger.WithFields(map[string]interface{}{
		"user_id":   input.UserID,
		"method":    input.Method,
		"submitted": len(resp.SubmittedItems),
		"skipped":   len(resp.SkippedItems),
		"failed":    len(resp.FailedItems),
	}).Info("Payment submitted")

	return resp, nil
}

// DecidePayment applies an admin verdict to exactly one pending line item:
// APPROVE settles it as PAID, REJECT returns it fully to UNPAID so the
// boarder must resubmit. Prior proof state is not restored on rejection.
func (s *paymentService) DecidePayment(billID string, item models.ItemType, decision models.Decision) (*models.IndividualBill, error) {
	if !decision.IsValid() {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}

	bill, err := s.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}

	current := item.Status(bill)
	next := decision.Status()
	if !current.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s is %s, cannot move to %s", ErrInvalidTransition, item, current, next)
	}

	if err := s.billRepo.UpdateItemStatus(billID, item, next); err != nil {
		return nil, fmt.Errorf("%w: deciding %s on bill %s: %v", ErrUpdate, item, billID, err)
	}

	item.SetStatus(bill, next)
	s.notifier.BillChanged(billID)

	s.logger.WithFields(map[string]interface{}{
		"bill_id":   billID,
		"item_type": item,
		"decision":  decision,
		"status":    next,
	}).Info("Payment decided")

	return bill, nil
}
