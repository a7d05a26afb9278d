package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardbill-be-svc/internal/billing"
	"boardbill-be-svc/internal/config"
	"boardbill-be-svc/internal/models"
	"boardbill-be-svc/pkg/logger"
)

func testRates() billing.Rates {
	return billing.RatesFromConfig(config.BillingConfig{
		FixedInternetBill:  2220,
		TotalRentBill:      5000,
		TotalBoarders:      8,
		TotalInternetUsers: 12,
	})
}

func eightFullBoarders() []*models.Boarder {
	var boarders []*models.Boarder
	for i := 1; i <= 8; i++ {
		boarders = append(boarders, &models.Boarder{
			ID:       fmt.Sprintf("boarder-%d", i),
			FullName: fmt.Sprintf("Boarder %d", i),
			BillType: models.BillTypeFull,
		})
	}
	return boarders
}

func newCycleTestEnv(boarders []*models.Boarder) (*fakeCycleRepo, *fakeBillRepo, *fakeBoarderRepo, CycleService) {
	cycleRepo := newFakeCycleRepo()
	billRepo := newFakeBillRepo()
	boarderRepo := &fakeBoarderRepo{boarders: boarders}
	svc := NewCycleService(cycleRepo, billRepo, boarderRepo, testRates(), &fakeNotifier{}, logger.NewLogger("error", "text"))
	return cycleRepo, billRepo, boarderRepo, svc
}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func parseTestDate(s string) (*time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func assertTotalDueInvariant(t *testing.T, billRepo *fakeBillRepo) {
	t.Helper()
	for _, b := range billRepo.bills {
		want := b.AmountRent.Add(b.AmountInternet).Add(b.AmountElectricity).Add(b.AmountWater)
		assert.True(t, b.TotalDue.Equal(want),
			"bill %s: total_due %s != sum of amounts %s", b.ID, b.TotalDue, want)
	}
}

func TestUpsertCycleCreatesCycleAndBills(t *testing.T) {
	boarders := append(eightFullBoarders(), &models.Boarder{ID: "partial-1", BillType: "ROOM_ONLY"})
	cycleRepo, billRepo, _, svc := newCycleTestEnv(boarders)

	resp, err := svc.UpsertCycle(UpsertCycleInput{
		MonthKey:         "2025-03",
		ElectricityTotal: dec("2000"),
		WaterTotal:       dec("900"),
	})
	require.NoError(t, err)

	assert.Equal(t, 8, resp.TotalBoarders)
	assert.Equal(t, 8, resp.SuccessCount)
	assert.Equal(t, 0, resp.FailedCount)

	cycle, err := cycleRepo.GetByMonthKey("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "March 2025", cycle.MonthName)
	assert.True(t, cycle.IsPublished)
	assert.True(t, cycle.TotalElectricity.Equal(decimal.RequireFromString("2000")))
	assert.True(t, cycle.TotalInternet.Equal(decimal.RequireFromString("2220")))
	require.NotNil(t, cycle.DeadlineInternet)
	assert.Equal(t, 17, cycle.DeadlineInternet.Day())
	assert.Equal(t, "2025-03-17", cycle.DeadlineInternet.Format("2006-01-02"))

	// Non-FULL boarders never receive a bill row.
	assert.Len(t, billRepo.bills, 8)
	_, err = billRepo.GetByUserAndCycle("partial-1", cycle.ID)
	assert.Error(t, err)

	bill, err := billRepo.GetByUserAndCycle("boarder-1", cycle.ID)
	require.NoError(t, err)
	assert.True(t, bill.AmountRent.Equal(decimal.RequireFromString("625")))
	assert.True(t, bill.AmountInternet.Equal(decimal.RequireFromString("185")))
	assert.True(t, bill.AmountElectricity.Equal(decimal.RequireFromString("250")))
	assert.True(t, bill.AmountWater.Equal(decimal.RequireFromString("112.5")))
	assert.True(t, bill.TotalDue.Equal(decimal.RequireFromString("1172.5")))
	for _, item := range models.AllItemTypes {
		assert.Equal(t, models.StatusUnpaid, item.Status(bill))
	}

	assertTotalDueInvariant(t, billRepo)
}

func TestUpsertCycleOmittedUtilityKeepsStoredAmounts(t *testing.T) {
	cycleRepo, billRepo, _, svc := newCycleTestEnv(eightFullBoarders())

	_, err := svc.UpsertCycle(UpsertCycleInput{
		MonthKey:         "2025-03",
		ElectricityTotal: dec("2000"),
		WaterTotal:       dec("900"),
	})
	require.NoError(t, err)

	// Re-submit with electricity omitted and a new water total.
	_, err = svc.UpsertCycle(UpsertCycleInput{
		MonthKey:   "2025-03",
		WaterTotal: dec("1200"),
	})
	require.NoError(t, err)

	// Still exactly one cycle row for the month.
	assert.Len(t, cycleRepo.cycles, 1)
	cycle, err := cycleRepo.GetByMonthKey("2025-03")
	require.NoError(t, err)
	assert.True(t, cycle.TotalElectricity.Equal(decimal.RequireFromString("2000")))
	assert.True(t, cycle.TotalWater.Equal(decimal.RequireFromString("1200")))

	for _, b := range billRepo.bills {
		assert.True(t, b.AmountElectricity.Equal(decimal.RequireFromString("250")),
			"electricity share must survive an omitted re-submission")
		assert.True(t, b.AmountWater.Equal(decimal.RequireFromString("150")))
		assert.True(t, b.TotalDue.Equal(decimal.RequireFromString("1210")),
			"total_due must be replaced, not incremented")
	}
	assertTotalDueInvariant(t, billRepo)
}

func TestUpsertCycleExplicitZeroIsARealReading(t *testing.T) {
	_, billRepo, _, svc := newCycleTestEnv(eightFullBoarders())

	_, err := svc.UpsertCycle(UpsertCycleInput{
		MonthKey:         "2025-03",
		ElectricityTotal: dec("2000"),
	})
	require.NoError(t, err)

	// An explicit zero is distinct from omission and overwrites the share.
	_, err = svc.UpsertCycle(UpsertCycleInput{
		MonthKey:         "2025-03",
		ElectricityTotal: dec("0"),
	})
	require.NoError(t, err)

	for _, b := range billRepo.bills {
		assert.True(t, b.AmountElectricity.IsZero())
	}
	assertTotalDueInvariant(t, billRepo)
}

func TestUpsertCycleIdempotent(t *testing.T) {
	_, billRepo, _, svc := newCycleTestEnv(eightFullBoarders())

	input := UpsertCycleInput{
		MonthKey:         "2025-03",
		ElectricityTotal: dec("2000"),
		WaterTotal:       dec("900"),
	}
	_, err := svc.UpsertCycle(input)
	require.NoError(t, err)
	_, err = svc.UpsertCycle(input)
	require.NoError(t, err)

	assert.Len(t, billRepo.bills, 8)
	for _, b := range billRepo.bills {
		assert.True(t, b.TotalDue.Equal(decimal.RequireFromString("1172.5")))
	}
}

func TestUpsertCycleDeadlinePolicy(t *testing.T) {
	cycleRepo, _, _, svc := newCycleTestEnv(eightFullBoarders())

	rent, err := parseTestDate("2025-03-05")
	require.NoError(t, err)
	_, err = svc.UpsertCycle(UpsertCycleInput{
		MonthKey:     "2025-03",
		RentDeadline: rent,
	})
	require.NoError(t, err)

	// Electricity deadline arrives only together with an electricity total.
	elecDeadline, err := parseTestDate("2025-03-20")
	require.NoError(t, err)
	_, err = svc.UpsertCycle(UpsertCycleInput{
		MonthKey:            "2025-03",
		ElectricityTotal:    dec("1600"),
		ElectricityDeadline: elecDeadline,
	})
	require.NoError(t, err)

	cycle, err := cycleRepo.GetByMonthKey("2025-03")
	require.NoError(t, err)
	require.NotNil(t, cycle.DeadlineRent)
	assert.Equal(t, "2025-03-05", cycle.DeadlineRent.Format("2006-01-02"))
	require.NotNil(t, cycle.DeadlineElectricity)
	assert.Equal(t, "2025-03-20", cycle.DeadlineElectricity.Format("2006-01-02"))
	assert.Nil(t, cycle.DeadlineWater)
}

func TestUpsertCycleInvalidMonthKey(t *testing.T) {
	_, _, _, svc := newCycleTestEnv(eightFullBoarders())

	_, err := svc.UpsertCycle(UpsertCycleInput{MonthKey: "March 2025"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpsertCycle(UpsertCycleInput{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertCycleCreateFailureAbortsBills(t *testing.T) {
	cycleRepo := newFakeCycleRepo()
	cycleRepo.createErr = errors.New("constraint violation")
	billRepo := newFakeBillRepo()
	boarderRepo := &fakeBoarderRepo{boarders: eightFullBoarders()}
	svc := NewCycleService(cycleRepo, billRepo, boarderRepo, testRates(), &fakeNotifier{}, logger.NewLogger("error", "text"))

	_, err := svc.UpsertCycle(UpsertCycleInput{MonthKey: "2025-03"})
	assert.ErrorIs(t, err, ErrCreation)
	assert.Empty(t, billRepo.bills, "no bills may be reconciled when the cycle insert fails")
}

func TestReconcileAbortsWhenBoarderFetchFails(t *testing.T) {
	cycleRepo := newFakeCycleRepo()
	billRepo := newFakeBillRepo()
	boarderRepo := &fakeBoarderRepo{err: errors.New("connection reset")}
	svc := NewCycleService(cycleRepo, billRepo, boarderRepo, testRates(), &fakeNotifier{}, logger.NewLogger("error", "text"))

	_, err := svc.UpsertCycle(UpsertCycleInput{MonthKey: "2025-03"})
	assert.ErrorIs(t, err, ErrLookup)
	assert.Empty(t, billRepo.bills)

	// The cycle write itself stands; only bill reconciliation aborted.
	assert.Len(t, cycleRepo.cycles, 1)
}

func TestReconcileReportsPerBoarderFailures(t *testing.T) {
	_, billRepo, _, svc := newCycleTestEnv(eightFullBoarders())
	billRepo.createErrFor["boarder-3"] = errors.New("disk full")

	resp, err := svc.UpsertCycle(UpsertCycleInput{
		MonthKey:         "2025-03",
		ElectricityTotal: dec("2000"),
	})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.SuccessCount)
	assert.Equal(t, 1, resp.FailedCount)
	assert.Equal(t, []string{"boarder-3"}, resp.FailedBoarderIDs)
	assert.Len(t, billRepo.bills, 7)
}

func TestReconcileCycleFillsMissingBills(t *testing.T) {
	cycleRepo, billRepo, _, svc := newCycleTestEnv(eightFullBoarders())

	_, err := svc.UpsertCycle(UpsertCycleInput{
		MonthKey:         "2025-03",
		ElectricityTotal: dec("2000"),
		WaterTotal:       dec("900"),
	})
	require.NoError(t, err)

	// Simulate the crash window: drop five of the eight bills.
	cycle, err := cycleRepo.GetByMonthKey("2025-03")
	require.NoError(t, err)
	dropped := 0
	for id, b := range billRepo.bills {
		if dropped == 5 {
			break
		}
		if b.CycleID == cycle.ID {
			delete(billRepo.bills, id)
			dropped++
		}
	}
	require.Len(t, billRepo.bills, 3)

	resp, err := svc.ReconcileCycle("2025-03")
	require.NoError(t, err)
	assert.Equal(t, 8, resp.SuccessCount)
	assert.Len(t, billRepo.bills, 8)

	// Recovered bills use the stored cycle totals, not zeroes.
	for _, b := range billRepo.bills {
		assert.True(t, b.AmountElectricity.Equal(decimal.RequireFromString("250")))
		assert.True(t, b.AmountWater.Equal(decimal.RequireFromString("112.5")))
	}
	assertTotalDueInvariant(t, billRepo)
}

func TestReconcileCycleUnknownMonth(t *testing.T) {
	_, _, _, svc := newCycleTestEnv(eightFullBoarders())

	_, err := svc.ReconcileCycle("2030-01")
	assert.Error(t, err)
}
