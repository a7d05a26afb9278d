package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"boardbill-be-svc/internal/middleware"
	"boardbill-be-svc/internal/service"
	"boardbill-be-svc/pkg/logger"
	"boardbill-be-svc/pkg/utils"
)

// BillHandler handles bill read and export HTTP requests
type BillHandler struct {
	billService service.BillService
	logger      *logger.Logger
}

// NewBillHandler creates a new BillHandler instance
func NewBillHandler(billService service.BillService, logger *logger.Logger) *BillHandler {
	return &BillHandler{
		billService: billService,
		logger:      logger,
	}
}

// GetMyBills returns the calling boarder's bills across cycles
// @Summary Get my bills
// @Description Retrieve the calling boarder's bills with per-item amounts, statuses, deadlines and selectability, newest cycle first
// @Tags bills
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response.BoarderBillView} "Bills retrieved successfully"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/my [get]
func (h *BillHandler) GetMyBills(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	bills, err := h.billService.GetMyBills(userID)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to get bills")
		respondServiceError(c, "Failed to get bills", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"count":   len(bills),
	}).Info("Bills retrieved successfully")

	utils.SuccessResponse(c, "Bills retrieved successfully", bills)
}

// GetPendingBills returns bills awaiting an admin decision
// @Summary Get bills with pending items
// @Description Retrieve every bill holding at least one PENDING line item, oldest first, with boarder name and room
// @Tags bills
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]response.PendingBillView} "Pending bills retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/pending [get]
func (h *BillHandler) GetPendingBills(c *gin.Context) {
	bills, err := h.billService.GetPendingBills()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get pending bills")
		respondServiceError(c, "Failed to get pending bills", err)
		return
	}

	h.logger.WithField("count", len(bills)).Info("Pending bills retrieved successfully")

	utils.SuccessResponse(c, "Pending bills retrieved successfully", bills)
}

// ExportBills exports one cycle's bills to an Excel workbook
// @Summary Export bills to Excel
// @Description Export every bill of the given cycle to an xlsx file, one row per boarder
// @Tags bills
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param month_key query string true "Month key (YYYY-MM)"
// @Success 200 {file} binary "Excel file"
// @Failure 400 {object} utils.APIResponse "Missing month key"
// @Failure 404 {object} utils.APIResponse "Cycle not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/export [get]
func (h *BillHandler) ExportBills(c *gin.Context) {
	monthKey := c.Query("month_key")
	if monthKey == "" {
		utils.BadRequestResponse(c, "Query parameter month_key is required", nil)
		return
	}

	content, filename, err := h.billService.ExportCycleBills(monthKey)
	if err != nil {
		h.logger.WithError(err).WithField("month_key", monthKey).Error("Failed to export bills")
		respondServiceError(c, "Failed to export bills", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"month_key": monthKey,
		"filename":  filename,
		"size":      len(content),
	}).Info("Bills exported successfully")

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", content)
}
