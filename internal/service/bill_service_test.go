package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardbill-be-svc/internal/models"
	"boardbill-be-svc/pkg/logger"
)

func newBillTestEnv() (*fakeBillRepo, *fakeCycleRepo, BillService) {
	billRepo := newFakeBillRepo()
	cycleRepo := newFakeCycleRepo()
	svc := NewBillService(billRepo, cycleRepo, logger.NewLogger("error", "text"))
	return billRepo, cycleRepo, svc
}

func TestGetMyBills(t *testing.T) {
	billRepo, _, svc := newBillTestEnv()
	bill := seedBill(billRepo, "bill-1", "user-1")
	bill.StatusRent = models.StatusPaid
	bill.Cycle = &models.BillingCycle{MonthKey: "2025-03", MonthName: "March 2025"}
	seedBill(billRepo, "bill-2", "user-2")

	views, err := svc.GetMyBills("user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "bill-1", view.BillID)
	assert.Equal(t, "2025-03", view.MonthKey)
	assert.Equal(t, "March 2025", view.MonthName)
	assert.Equal(t, "1172.50", view.TotalDue)
	require.Len(t, view.Items, 4)

	byType := make(map[models.ItemType]bool)
	for _, item := range view.Items {
		byType[item.Type] = item.Selectable
	}
	assert.False(t, byType[models.ItemRent], "paid rent must not be selectable")
	assert.True(t, byType[models.ItemWater])
	assert.True(t, byType[models.ItemElectricity])
	assert.True(t, byType[models.ItemInternet])
}

func TestGetMyBillsEmpty(t *testing.T) {
	_, _, svc := newBillTestEnv()

	views, err := svc.GetMyBills("user-1")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetPendingBillsShowsOnlyPendingItems(t *testing.T) {
	billRepo, _, svc := newBillTestEnv()
	bill := seedBill(billRepo, "bill-1", "user-1")
	bill.StatusRent = models.StatusPending
	bill.StatusWater = models.StatusPaid
	bill.Boarder = &models.Boarder{FullName: "Ana Reyes", RoomNumber: "2B"}
	bill.Cycle = &models.BillingCycle{MonthName: "March 2025"}
	seedBill(billRepo, "bill-2", "user-2")

	views, err := svc.GetPendingBills()
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, "Ana Reyes", view.BoarderName)
	assert.Equal(t, "2B", view.RoomNumber)
	assert.Equal(t, "March 2025", view.MonthName)
	require.Len(t, view.PendingItems, 1)
	assert.Equal(t, models.ItemRent, view.PendingItems[0].Type)
	assert.Equal(t, models.StatusPending, view.PendingItems[0].Status)
	assert.False(t, view.PendingItems[0].Selectable)
}

func TestExportCycleBills(t *testing.T) {
	billRepo, cycleRepo, svc := newBillTestEnv()
	cycleRepo.cycles["cycle-1"] = &models.BillingCycle{ID: "cycle-1", MonthKey: "2025-03", MonthName: "March 2025"}
	bill := seedBill(billRepo, "bill-1", "user-1")
	bill.Boarder = &models.Boarder{FullName: "Ana Reyes", RoomNumber: "2B"}

	content, filename, err := svc.ExportCycleBills("2025-03")
	require.NoError(t, err)

	assert.NotEmpty(t, content)
	assert.Contains(t, filename, "bills_2025-03_")
	assert.Contains(t, filename, ".xlsx")
	// xlsx files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, content[:2])
}

func TestExportCycleBillsUnknownMonth(t *testing.T) {
	_, _, svc := newBillTestEnv()

	_, _, err := svc.ExportCycleBills("2030-01")
	assert.Error(t, err)
}
