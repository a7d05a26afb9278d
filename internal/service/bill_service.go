package service

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"boardbill-be-svc/internal/billing"
	"boardbill-be-svc/internal/models"
	"boardbill-be-svc/internal/models/response"
	"boardbill-be-svc/internal/repository"
	"boardbill-be-svc/pkg/logger"
)

// BillService defines the interface for bill read and export operations
type BillService interface {
	GetMyBills(userID string) ([]*response.BoarderBillView, error)
	GetPendingBills() ([]*response.PendingBillView, error)
	ExportCycleBills(monthKey string) ([]byte, string, error)
}

// billService implements BillService
type billService struct {
	billRepo  repository.BillRepository
	cycleRepo repository.CycleRepository
	logger    *logger.Logger
}

// NewBillService creates a new instance of BillService
func NewBillService(billRepo repository.BillRepository, cycleRepo repository.CycleRepository, logger *logger.Logger) BillService {
	return &billService{
		billRepo:  billRepo,
		cycleRepo: cycleRepo,
		logger:    logger,
	}
}

// GetMyBills returns the boarder's bills across cycles, newest first, with
// per-item selectability so the client never offers a paid, pending or
// zero-amount item for payment.
func (s *billService) GetMyBills(userID string) ([]*response.BoarderBillView, error) {
	bills, err := s.billRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing bills for user %s: %v", ErrLookup, userID, err)
	}

	views := make([]*response.BoarderBillView, 0, len(bills))
	for _, bill := range bills {
		view := &response.BoarderBillView{
			BillID:        bill.ID,
			TotalDue:      bill.TotalDue.StringFixed(2),
			ProofURL:      bill.ProofURL,
			PaymentMethod: bill.PaymentMethod,
		}
		if bill.Cycle != nil {
			view.MonthKey = bill.Cycle.MonthKey
			view.MonthName = bill.Cycle.MonthName
		}
		for _, t := range models.AllItemTypes {
			view.Items = append(view.Items, lineItemView(bill, t))
		}
		views = append(views, view)
	}

	return views, nil
}

// GetPendingBills returns every bill with at least one item awaiting an
// admin decision, oldest first
func (s *billService) GetPendingBills() ([]*response.PendingBillView, error) {
	bills, err := s.billRepo.ListWithPendingItems()
	if err != nil {
		return nil, fmt.Errorf("%w: listing pending bills: %v", ErrLookup, err)
	}

	views := make([]*response.PendingBillView, 0, len(bills))
	for _, bill := range bills {
		view := &response.PendingBillView{
			BillID:        bill.ID,
			ProofURL:      bill.ProofURL,
			PaymentMethod: bill.PaymentMethod,
		}
		if bill.Boarder != nil {
			view.BoarderName = bill.Boarder.FullName
			view.RoomNumber = bill.Boarder.RoomNumber
		}
		if bill.Cycle != nil {
			view.MonthName = bill.Cycle.MonthName
		}
		for _, t := range models.AllItemTypes {
			if t.Status(bill) == models.StatusPending {
				view.PendingItems = append(view.PendingItems, lineItemView(bill, t))
			}
		}
		views = append(views, view)
	}

	return views, nil
}

func lineItemView(bill *models.IndividualBill, t models.ItemType) response.LineItemView {
	view := response.LineItemView{
		Type:       t,
		Amount:     t.Amount(bill).StringFixed(2),
		Status:     t.Status(bill),
		Selectable: billing.IsSelectable(bill, t),
	}
	if bill.Cycle != nil {
		view.Deadline = t.Deadline(bill.Cycle)
	}
	return view
}

// ExportCycleBills writes every bill of one cycle to an Excel workbook, one
// row per boarder
func (s *billService) ExportCycleBills(monthKey string) ([]byte, string, error) {
	cycle, err := s.cycleRepo.GetByMonthKey(monthKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get cycle %s: %w", monthKey, err)
	}

	bills, err := s.billRepo.ListByCycle(cycle.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%w: listing bills for cycle %s: %v", ErrLookup, cycle.ID, err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Bills"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"No", "Boarder", "Room",
		"Rent", "Rent Status",
		"Internet", "Internet Status",
		"Electricity", "Electricity Status",
		"Water", "Water Status",
		"Total Due",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "L1", headerStyle)
	}

	for i, bill := range bills {
		row := i + 2

		name, room := "", ""
		if bill.Boarder != nil {
			name = bill.Boarder.FullName
			room = bill.Boarder.RoomNumber
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), room)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), bill.AmountRent.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), string(bill.StatusRent))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), bill.AmountInternet.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), string(bill.StatusInternet))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), bill.AmountElectricity.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), string(bill.StatusElectricity))
		f.SetCellValue(sheetName, fmt.Sprintf("J%d", row), bill.AmountWater.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("K%d", row), string(bill.StatusWater))
		f.SetCellValue(sheetName, fmt.Sprintf("L%d", row), bill.TotalDue.StringFixed(2))
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("bills_%s_%s.xlsx", monthKey, timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}
