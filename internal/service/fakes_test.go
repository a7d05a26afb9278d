package service

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"boardbill-be-svc/internal/models"
)

// In-memory repository fakes. The reconcile loop writes concurrently, so
// every fake guards its maps with a mutex.

type fakeCycleRepo struct {
	mu        sync.Mutex
	cycles    map[string]*models.BillingCycle // keyed by ID
	createErr error
	updateErr error
	getErr    error
}

func newFakeCycleRepo() *fakeCycleRepo {
	return &fakeCycleRepo{cycles: make(map[string]*models.BillingCycle)}
}

func (r *fakeCycleRepo) GetByID(id string) (*models.BillingCycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	if c, ok := r.cycles[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCycleRepo) GetByMonthKey(monthKey string) (*models.BillingCycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	for _, c := range r.cycles {
		if c.MonthKey == monthKey {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCycleRepo) Create(cycle *models.BillingCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for _, c := range r.cycles {
		if c.MonthKey == cycle.MonthKey {
			return errors.New("duplicate month_key")
		}
	}
	cp := *cycle
	r.cycles[cycle.ID] = &cp
	return nil
}

func (r *fakeCycleRepo) Update(cycle *models.BillingCycle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *cycle
	r.cycles[cycle.ID] = &cp
	return nil
}

func (r *fakeCycleRepo) List() ([]*models.BillingCycle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.BillingCycle
	for _, c := range r.cycles {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

type fakeBillRepo struct {
	mu            sync.Mutex
	bills         map[string]*models.IndividualBill // keyed by ID
	createErrFor  map[string]error                  // keyed by user ID
	updateErrFor  map[string]error                  // keyed by bill ID
	statusErrFor  map[string]error                  // keyed by bill ID
	paymentErrFor map[string]error                  // keyed by bill ID
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{
		bills:         make(map[string]*models.IndividualBill),
		createErrFor:  make(map[string]error),
		updateErrFor:  make(map[string]error),
		statusErrFor:  make(map[string]error),
		paymentErrFor: make(map[string]error),
	}
}

func (r *fakeBillRepo) GetByID(id string) (*models.IndividualBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bills[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBillRepo) GetByUserAndCycle(userID, cycleID string) (*models.IndividualBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bills {
		if b.UserID == userID && b.CycleID == cycleID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBillRepo) Create(bill *models.IndividualBill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.createErrFor[bill.UserID]; err != nil {
		return err
	}
	cp := *bill
	r.bills[bill.ID] = &cp
	return nil
}

func (r *fakeBillRepo) Update(bill *models.IndividualBill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErrFor[bill.ID]; err != nil {
		return err
	}
	cp := *bill
	r.bills[bill.ID] = &cp
	return nil
}

func (r *fakeBillRepo) UpdateItemStatus(billID string, item models.ItemType, status models.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.statusErrFor[billID]; err != nil {
		return err
	}
	b, ok := r.bills[billID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.SetStatus(b, status)
	return nil
}

func (r *fakeBillRepo) SetPaymentInfo(billID string, method models.PaymentMethod, proofURL *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.paymentErrFor[billID]; err != nil {
		return err
	}
	b, ok := r.bills[billID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.PaymentMethod = &method
	if proofURL != nil {
		b.ProofURL = proofURL
	}
	return nil
}

func (r *fakeBillRepo) ListByUser(userID string) ([]*models.IndividualBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.IndividualBill
	for _, b := range r.bills {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBillRepo) ListByCycle(cycleID string) ([]*models.IndividualBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.IndividualBill
	for _, b := range r.bills {
		if b.CycleID == cycleID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBillRepo) ListWithPendingItems() ([]*models.IndividualBill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.IndividualBill
	for _, b := range r.bills {
		if b.HasPendingItem() {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeBoarderRepo struct {
	boarders []*models.Boarder
	err      error
}

func (r *fakeBoarderRepo) GetByID(id string) (*models.Boarder, error) {
	for _, b := range r.boarders {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeBoarderRepo) GetFullBoarders() ([]*models.Boarder, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []*models.Boarder
	for _, b := range r.boarders {
		if b.BillType == models.BillTypeFull {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeStorage struct {
	url   string
	err   error
	saves int
}

func (s *fakeStorage) Save(userID, filename string, content []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saves++
	return s.url, nil
}

type fakeNotifier struct {
	mu          sync.Mutex
	cycleEvents int
	billsEvents int
	billEvents  int
}

func (n *fakeNotifier) CycleChanged(cycleID, monthKey string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cycleEvents++
}

func (n *fakeNotifier) BillsChanged(cycleID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.billsEvents++
}

func (n *fakeNotifier) BillChanged(billID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.billEvents++
}
