package service

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"boardbill-be-svc/internal/billing"
	"boardbill-be-svc/internal/models"
	"boardbill-be-svc/internal/repository"
	"boardbill-be-svc/pkg/logger"
)

// UpsertCycleInput carries an admin submission for one month. Nil fields
// were not submitted; a present zero is a genuine zero reading. This keeps
// "admin left the field blank" distinct from "the meter really read zero".
type UpsertCycleInput struct {
	MonthKey            string
	ElectricityTotal    *decimal.Decimal
	WaterTotal          *decimal.Decimal
	RentDeadline        *time.Time
	WaterDeadline       *time.Time
	ElectricityDeadline *time.Time
}

// ReconcileResponse reports the outcome of reconciling one cycle's bills.
// Per-boarder writes are independent, so failures are reported per boarder
// instead of failing the whole call.
type ReconcileResponse struct {
	CycleID          string   `json:"cycle_id"`
	MonthKey         string   `json:"month_key"`
	TotalBoarders    int      `json:"total_boarders"`
	SuccessCount     int      `json:"success_count"`
	FailedCount      int      `json:"failed_count"`
	FailedBoarderIDs []string `json:"failed_boarder_ids,omitempty"`
	Errors           []string `json:"errors,omitempty"`
}

// CycleService defines the interface for billing cycle operations
type CycleService interface {
	UpsertCycle(input UpsertCycleInput) (*ReconcileResponse, error)
	ReconcileCycle(monthKey string) (*ReconcileResponse, error)
	ListCycles() ([]*models.BillingCycle, error)
}

// cycleService implements CycleService
type cycleService struct {
	cycleRepo   repository.CycleRepository
	billRepo    repository.BillRepository
	boarderRepo repository.BoarderRepository
	rates       billing.Rates
	notifier    Notifier
	logger      *logger.Logger
}

// NewCycleService creates a new instance of CycleService
func NewCycleService(
	cycleRepo repository.CycleRepository,
	billRepo repository.BillRepository,
	boarderRepo repository.BoarderRepository,
	rates billing.Rates,
	notifier Notifier,
	logger *logger.Logger,
) CycleService {
	return &cycleService{
		cycleRepo:   cycleRepo,
		billRepo:    billRepo,
		boarderRepo: boarderRepo,
		rates:       rates,
		notifier:    notifier,
		logger:      logger,
	}
}

// UpsertCycle finds or creates the cycle for the submitted month, applies the
// partial-overwrite policy, and reconciles every FULL boarder's bill against
// the resulting cycle row. Cycle write and bill reconciliation are not one
// transaction: a failure between them leaves a cycle without bills, which a
// re-submission or ReconcileCycle completes, since both steps are idempotent.
func (s *cycleService) UpsertCycle(input UpsertCycleInput) (*ReconcileResponse, error) {
	if _, err := billing.ParseMonthKey(input.MonthKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cycle, err := s.cycleRepo.GetByMonthKey(input.MonthKey)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: fetching cycle %s: %v", ErrLookup, input.MonthKey, err)
	}

	if cycle == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		cycle, err = s.createCycle(input)
		if err != nil {
			return nil, err
		}
		s.logger.WithFields(map[string]interface{}{
			"cycle_id":  cycle.ID,
			"month_key": cycle.MonthKey,
		}).Info("Billing cycle created")
	} else {
		if err := s.updateCycle(cycle, input); err != nil {
			return nil, err
		}
		s.logger.WithFields(map[string]interface{}{
			"cycle_id":  cycle.ID,
			"month_key": cycle.MonthKey,
		}).Info("Billing cycle updated")
	}

	s.notifier.CycleChanged(cycle.ID, cycle.MonthKey)

	return s.reconcileBills(cycle, input.ElectricityTotal != nil, input.WaterTotal != nil)
}

// ReconcileCycle completes missing bills for an existing cycle without
// touching its stored totals. It is the recovery path for the window where a
// cycle was committed but bill reconciliation did not finish.
func (s *cycleService) ReconcileCycle(monthKey string) (*ReconcileResponse, error) {
	if _, err := billing.ParseMonthKey(monthKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cycle, err := s.cycleRepo.GetByMonthKey(monthKey)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: fetching cycle %s: %v", ErrLookup, monthKey, err)
	}

	// No utility was re-submitted, so existing electricity/water amounts
	// stay untouched; only missing bills are filled in.
	return s.reconcileBills(cycle, false, false)
}

// ListCycles returns the cycle history, newest first
func (s *cycleService) ListCycles() ([]*models.BillingCycle, error) {
	cycles, err := s.cycleRepo.List()
	if err != nil {
		return nil, fmt.Errorf("%w: listing cycles: %v", ErrLookup, err)
	}
	return cycles, nil
}

// createCycle inserts a new cycle row from the submission. Absent totals
// default to zero, absent deadlines stay null, the internet total and
// deadline always come from the fixed rate and the 17th-of-month rule.
func (s *cycleService) createCycle(input UpsertCycleInput) (*models.BillingCycle, error) {
	monthName, err := billing.MonthName(input.MonthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	internetDeadline, err := billing.InternetDeadline(input.MonthKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	cycle := &models.BillingCycle{
		ID:                  uuid.New().String(),
		MonthKey:            input.MonthKey,
		MonthName:           monthName,
		TotalElectricity:    decimal.Zero,
		TotalWater:          decimal.Zero,
		TotalInternet:       s.rates.FixedInternetBill,
		DeadlineRent:        input.RentDeadline,
		DeadlineWater:       input.WaterDeadline,
		DeadlineElectricity: input.ElectricityDeadline,
		DeadlineInternet:    &internetDeadline,
		IsPublished:         true,
	}
	if input.ElectricityTotal != nil {
		cycle.TotalElectricity = *input.ElectricityTotal
	}
	if input.WaterTotal != nil {
		cycle.TotalWater = *input.WaterTotal
	}

	if err := s.cycleRepo.Create(cycle); err != nil {
		return nil, fmt.Errorf("%w: inserting cycle %s: %v", ErrCreation, input.MonthKey, err)
	}

	return cycle, nil
}

// updateCycle applies the partial-overwrite policy to an existing cycle:
// a utility total and its deadline move together and only when that utility
// was submitted, the rent deadline only when submitted, and the internet
// total and deadline are always refreshed since internet never varies.
// Admins often re-submit the form for just one utility mid-month; this keeps
// a blank field from zeroing out an already-recorded total.
func (s *cycleService) updateCycle(cycle *models.BillingCycle, input UpsertCycleInput) error {
	if input.ElectricityTotal != nil {
		cycle.TotalElectricity = *input.ElectricityTotal
		if input.ElectricityDeadline != nil {
			cycle.DeadlineElectricity = input.ElectricityDeadline
		}
	}
	if input.WaterTotal != nil {
		cycle.TotalWater = *input.WaterTotal
		if input.WaterDeadline != nil {
			cycle.DeadlineWater = input.WaterDeadline
		}
	}
	if input.RentDeadline != nil {
		cycle.DeadlineRent = input.RentDeadline
	}

	cycle.TotalInternet = s.rates.FixedInternetBill
	internetDeadline, err := billing.InternetDeadline(cycle.MonthKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	cycle.DeadlineInternet = &internetDeadline

	if err := s.cycleRepo.Update(cycle); err != nil {
		return fmt.Errorf("%w: updating cycle %s: %v", ErrUpdate, cycle.MonthKey, err)
	}

	return nil
}

// reconcileBills finds or creates each FULL boarder's bill for the cycle.
// Shares are computed from the stored cycle row, so the insert path and the
// recovery path agree on amounts. Boarder writes are independent and fan out
// concurrently; failures are collected per boarder.
func (s *cycleService) reconcileBills(cycle *models.BillingCycle, elecSubmitted, waterSubmitted bool) (*ReconcileResponse, error) {
	boarders, err := s.boarderRepo.GetFullBoarders()
	if err != nil {
		return nil, fmt.Errorf("%w: fetching boarders: %v", ErrLookup, err)
	}

	shares := billing.ComputeShares(s.rates, &cycle.TotalElectricity, &cycle.TotalWater)

	resp := &ReconcileResponse{
		CycleID:       cycle.ID,
		MonthKey:      cycle.MonthKey,
		TotalBoarders: len(boarders),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, boarder := range boarders {
		wg.Add(1)
		go func(b *models.Boarder) {
			defer wg.Done()
			if err := s.reconcileBoarderBill(cycle, b, shares, elecSubmitted, waterSubmitted); err != nil {
				mu.Lock()
				resp.FailedBoarderIDs = append(resp.FailedBoarderIDs, b.ID)
				resp.Errors = append(resp.Errors, err.Error())
				mu.Unlock()
				s.logger.WithError(err).WithFields(map[string]interface{}{
					"cycle_id": cycle.ID,
					"user_id":  b.ID,
				}).Error("Failed to reconcile bill")
			}
		}(boarder)
	}
	wg.Wait()

	sort.Strings(resp.FailedBoarderIDs)
	resp.FailedCount = len(resp.FailedBoarderIDs)
	resp.SuccessCount = resp.TotalBoarders - resp.FailedCount

	if resp.SuccessCount > 0 {
		s.notifier.BillsChanged(cycle.ID)
	}

	s.logger.WithFields(map[string]interface{}{
		"cycle_id":       cycle.ID,
		"month_key":      cycle.MonthKey,
		"total_boarders": resp.TotalBoarders,
		"success_count":  resp.SuccessCount,
		"failed_count":   resp.FailedCount,
	}).Info("Bill reconciliation completed")

	return resp, nil
}

// reconcileBoarderBill merges the cycle's shares into one boarder's bill.
// Rent and internet are always replaced since they are fixed shares;
// electricity and water are replaced only when that utility was submitted in
// this call. TotalDue is always recomputed from the four resulting amounts,
// never incremented, so repeated submissions cannot double-count.
func (s *cycleService) reconcileBoarderBill(
	cycle *models.BillingCycle,
	boarder *models.Boarder,
	shares billing.Shares,
	elecSubmitted, waterSubmitted bool,
) error {
	bill, err := s.billRepo.GetByUserAndCycle(boarder.ID, cycle.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: fetching bill for user %s: %v", ErrLookup, boarder.ID, err)
	}

	if bill == nil || errors.Is(err, gorm.ErrRecordNotFound) {
		bill = &models.IndividualBill{
			ID:                uuid.New().String(),
			UserID:            boarder.ID,
			CycleID:           cycle.ID,
			AmountRent:        shares.Rent,
			AmountWater:       shares.Water,
			AmountElectricity: shares.Electricity,
			AmountInternet:    shares.Internet,
			StatusRent:        models.StatusUnpaid,
			StatusWater:       models.StatusUnpaid,
			StatusElectricity: models.StatusUnpaid,
			StatusInternet:    models.StatusUnpaid,
		}
		bill.RecomputeTotalDue()
		if err := s.billRepo.Create(bill); err != nil {
			return fmt.Errorf("%w: inserting bill for user %s: %v", ErrCreation, boarder.ID, err)
		}
		return nil
	}

	bill.AmountRent = shares.Rent
	bill.AmountInternet = shares.Internet
	if elecSubmitted {
		bill.AmountElectricity = shares.Electricity
	}
	if waterSubmitted {
		bill.AmountWater = shares.Water
	}
	bill.RecomputeTotalDue()

	if err := s.billRepo.Update(bill); err != nil {
		return fmt.Errorf("%w: updating bill for user %s: %v", ErrUpdate, boarder.ID, err)
	}
	return nil
}
