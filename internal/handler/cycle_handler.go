package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"boardbill-be-svc/internal/service"
	"boardbill-be-svc/pkg/logger"
	"boardbill-be-svc/pkg/utils"
)

// dateLayout is the wire format for deadline fields
const dateLayout = "2006-01-02"

// UpsertCycleRequest is the admin submission for one month. Omitted fields
// mean "keep the stored value"; a present zero is a real zero reading.
type UpsertCycleRequest struct {
	MonthKey            string   `json:"month_key" binding:"required"`
	ElectricityTotal    *float64 `json:"electricity_total" binding:"omitempty,gte=0"`
	WaterTotal          *float64 `json:"water_total" binding:"omitempty,gte=0"`
	RentDeadline        *string  `json:"rent_deadline"`
	WaterDeadline       *string  `json:"water_deadline"`
	ElectricityDeadline *string  `json:"electricity_deadline"`
}

// CycleHandler handles billing cycle HTTP requests
type CycleHandler struct {
	cycleService service.CycleService
	logger       *logger.Logger
}

// NewCycleHandler creates a new CycleHandler instance
func NewCycleHandler(cycleService service.CycleService, logger *logger.Logger) *CycleHandler {
	return &CycleHandler{
		cycleService: cycleService,
		logger:       logger,
	}
}

// UpsertCycle creates or updates the billing cycle for a month and
// reconciles every boarder's bill against it
// @Summary Create or update a billing cycle
// @Description Find-or-create the cycle for the given month key, apply partial updates to totals and deadlines, and reconcile all FULL boarders' bills
// @Tags cycles
// @Accept json
// @Produce json
// @Param request body UpsertCycleRequest true "Cycle submission"
// @Success 200 {object} utils.APIResponse{data=service.ReconcileResponse} "Reconciliation result"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/cycles [post]
func (h *CycleHandler) UpsertCycle(c *gin.Context) {
	var req UpsertCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.logger.WithError(err).Error("Invalid cycle submission")
		utils.BadRequestResponse(c, "Invalid cycle submission", err)
		return
	}

	resp, err := h.cycleService.UpsertCycle(input)
	if err != nil {
		h.logger.WithError(err).WithField("month_key", req.MonthKey).Error("Failed to upsert cycle")
		respondServiceError(c, "Failed to upsert cycle", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"cycle_id":      resp.CycleID,
		"month_key":     resp.MonthKey,
		"success_count": resp.SuccessCount,
		"failed_count":  resp.FailedCount,
	}).Info("Cycle upserted successfully")

	utils.SuccessResponse(c, "Cycle upserted successfully", resp)
}

// ReconcileCycle completes missing bills for an existing cycle
// @Summary Reconcile bills for an existing cycle
// @Description Recovery operation: create any missing boarder bills for the cycle without changing stored totals
// @Tags cycles
// @Accept json
// @Produce json
// @Param month_key path string true "Month key (YYYY-MM)"
// @Success 200 {object} utils.APIResponse{data=service.ReconcileResponse} "Reconciliation result"
// @Failure 404 {object} utils.APIResponse "Cycle not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/cycles/{month_key}/reconcile [post]
func (h *CycleHandler) ReconcileCycle(c *gin.Context) {
	monthKey := c.Param("month_key")

	resp, err := h.cycleService.ReconcileCycle(monthKey)
	if err != nil {
		h.logger.WithError(err).WithField("month_key", monthKey).Error("Failed to reconcile cycle")
		respondServiceError(c, "Failed to reconcile cycle", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"cycle_id":      resp.CycleID,
		"month_key":     resp.MonthKey,
		"success_count": resp.SuccessCount,
		"failed_count":  resp.FailedCount,
	}).Info("Cycle reconciled successfully")

	utils.SuccessResponse(c, "Cycle reconciled successfully", resp)
}

// ListCycles returns the cycle history, newest first
// @Summary List billing cycles
// @Description Retrieve all billing cycles, newest first
// @Tags cycles
// @Produce json
// @Success 200 {object} utils.APIResponse{data=[]models.BillingCycle} "Cycles retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/cycles [get]
func (h *CycleHandler) ListCycles(c *gin.Context) {
	cycles, err := h.cycleService.ListCycles()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list cycles")
		respondServiceError(c, "Failed to list cycles", err)
		return
	}

	utils.SuccessResponse(c, "Cycles retrieved successfully", cycles)
}

func (r *UpsertCycleRequest) toInput() (service.UpsertCycleInput, error) {
	input := service.UpsertCycleInput{MonthKey: r.MonthKey}

	if r.ElectricityTotal != nil {
		d := decimal.NewFromFloat(*r.ElectricityTotal)
		input.ElectricityTotal = &d
	}
	if r.WaterTotal != nil {
		d := decimal.NewFromFloat(*r.WaterTotal)
		input.WaterTotal = &d
	}

	var err error
	if input.RentDeadline, err = parseDate(r.RentDeadline); err != nil {
		return input, err
	}
	if input.WaterDeadline, err = parseDate(r.WaterDeadline); err != nil {
		return input, err
	}
	if input.ElectricityDeadline, err = parseDate(r.ElectricityDeadline); err != nil {
		return input, err
	}

	return input, nil
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *raw)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", *raw)
	}
	return &t, nil
}
