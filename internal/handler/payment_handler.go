package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"boardbill-be-svc/internal/billing"
	"boardbill-be-svc/internal/middleware"
	"boardbill-be-svc/internal/models"
	"boardbill-be-svc/internal/service"
	"boardbill-be-svc/pkg/logger"
	"boardbill-be-svc/pkg/utils"
)

// paymentItemRequest is one selected line item in a submission
type paymentItemRequest struct {
	BillID   string `json:"bill_id" binding:"required"`
	ItemType string `json:"item_type" binding:"required"`
}

// DecidePaymentRequest is the admin verdict on one pending line item
type DecidePaymentRequest struct {
	BillID   string `json:"bill_id" binding:"required"`
	ItemType string `json:"item_type" binding:"required"`
	Decision string `json:"decision" binding:"required,oneof=APPROVE REJECT"`
}

// PaymentHandler handles payment HTTP requests
type PaymentHandler struct {
	paymentService service.PaymentService
	logger         *logger.Logger
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(paymentService service.PaymentService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// SubmitPayment submits selected unpaid line items for payment
// @Summary Submit a payment
// @Description Move the boarder's selected unpaid line items to PENDING. Multipart form: "items" is a JSON array of {bill_id, item_type}, "method" is CASH or GCASH, "proof" is the receipt image (required for GCASH).
// @Tags payments
// @Accept multipart/form-data
// @Produce json
// @Param items formData string true "JSON array of selected items"
// @Param method formData string true "CASH or GCASH"
// @Param proof formData file false "Receipt image, required for GCASH"
// @Success 200 {object} utils.APIResponse{data=service.SubmitPaymentResponse} "Submission result"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Bill not owned by caller"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments [post]
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var rawItems []paymentItemRequest
	if err := json.Unmarshal([]byte(c.PostForm("items")), &rawItems); err != nil {
		h.logger.WithError(err).Error("Invalid items payload")
		utils.BadRequestResponse(c, "Field items must be a JSON array of {bill_id, item_type}", err)
		return
	}

	items := make([]billing.ItemKey, 0, len(rawItems))
	for _, raw := range rawItems {
		itemType, err := models.ParseItemType(raw.ItemType)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid item type", err)
			return
		}
		items = append(items, billing.ItemKey{BillID: raw.BillID, ItemType: itemType})
	}

	input := service.SubmitPaymentInput{
		UserID: userID,
		Items:  items,
		Method: models.PaymentMethod(c.PostForm("method")),
	}

	if file, err := c.FormFile("proof"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			h.logger.WithError(err).Error("Failed to open uploaded receipt")
			utils.BadRequestResponse(c, "Failed to read receipt file", err)
			return
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			h.logger.WithError(err).Error("Failed to read uploaded receipt")
			utils.BadRequestResponse(c, "Failed to read receipt file", err)
			return
		}
		input.ProofFilename = file.Filename
		input.ProofContent = content
	}

	resp, err := h.paymentService.SubmitPayment(input)
	if err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Error("Failed to submit payment")
		respondServiceError(c, "Failed to submit payment", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"user_id":   userID,
		"method":    input.Method,
		"submitted": len(resp.SubmittedItems),
		"skipped":   len(resp.SkippedItems),
		"failed":    len(resp.FailedItems),
	}).Info("Payment submitted successfully")

	utils.SuccessResponse(c, "Payment submitted successfully", resp)
}

// DecidePayment applies an admin decision to one pending line item
// @Summary Decide a pending payment
// @Description APPROVE moves the line item to PAID, REJECT returns it to UNPAID
// @Tags payments
// @Accept json
// @Produce json
// @Param request body DecidePaymentRequest true "Decision"
// @Success 200 {object} utils.APIResponse{data=models.IndividualBill} "Decision applied"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Failure 409 {object} utils.APIResponse "Item is not pending"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/payments/decide [post]
func (h *PaymentHandler) DecidePayment(c *gin.Context) {
	var req DecidePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Error("Invalid request body")
		utils.BadRequestResponse(c, "Request body must be valid JSON", err)
		return
	}

	itemType, err := models.ParseItemType(req.ItemType)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid item type", err)
		return
	}

	bill, err := h.paymentService.DecidePayment(req.BillID, itemType, models.Decision(req.Decision))
	if err != nil {
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"bill_id":   req.BillID,
			"item_type": req.ItemType,
			"decision":  req.Decision,
		}).Error("Failed to decide payment")
		respondServiceError(c, "Failed to decide payment", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"bill_id":   req.BillID,
		"item_type": req.ItemType,
		"decision":  req.Decision,
	}).Info("Payment decided successfully")

	utils.SuccessResponse(c, "Payment decided successfully", bill)
}
