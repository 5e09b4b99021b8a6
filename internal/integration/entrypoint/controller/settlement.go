package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/receipt-split/backend/internal/application/usecase/settlement"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/entrypoint/dto"
	"github.com/receipt-split/backend/internal/integration/entrypoint/middleware"
)

// SettlementController handles payment summary, settlement and history endpoints.
type SettlementController struct {
	summaryUseCase *settlement.GetPaymentSummaryUseCase
	settleUseCase  *settlement.SettleReceiptUseCase
	listUseCase    *settlement.ListSettlementsUseCase
}

// NewSettlementController creates a new settlement controller instance.
func NewSettlementController(
	summaryUseCase *settlement.GetPaymentSummaryUseCase,
	settleUseCase *settlement.SettleReceiptUseCase,
	listUseCase *settlement.ListSettlementsUseCase,
) *SettlementController {
	return &SettlementController{
		summaryUseCase: summaryUseCase,
		settleUseCase:  settleUseCase,
		listUseCase:    listUseCase,
	}
}

// PaymentSummary handles GET /receipts/:id/payment-summary requests.
func (c *SettlementController) PaymentSummary(ctx *gin.Context) {
	receiptID, ok := parseReceiptID(ctx)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), settlement.GetPaymentSummaryInput{ReceiptID: receiptID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentSummaryResponse(output))
}

// Settle handles POST /receipts/:id/settlements requests.
// Users who cannot pay are reported in the body, not as an error status.
func (c *SettlementController) Settle(ctx *gin.Context) {
	receiptID, ok := parseReceiptID(ctx)
	if !ok {
		return
	}

	var req dto.SettleReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingSettlementFields))
		return
	}

	input := settlement.SettleReceiptInput{
		ReceiptID:  receiptID,
		Policy:     req.Policy,
		UseDeposit: true,
	}
	if req.UseDeposit != nil {
		input.UseDeposit = *req.UseDeposit
	}
	if requestedBy, ok := middleware.GetUserIDFromContext(ctx); ok {
		input.RequestedBy = &requestedBy
	}

	output, err := c.settleUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettleReceiptResponse(output))
}

// ListByUser handles GET /users/:id/settlements requests.
func (c *SettlementController) ListByUser(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	input := settlement.ListSettlementsInput{UserID: userID}
	if raw := ctx.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			respondError(ctx, http.StatusBadRequest, "limit must be a positive integer", string(domainerror.ErrCodeMissingSettlementFields))
			return
		}
		input.Limit = limit
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSettlementListResponse(output.Settlements))
}
