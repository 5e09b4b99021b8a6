package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/usecase/receipt"
	"github.com/receipt-split/backend/internal/application/usecase/split"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/entrypoint/dto"
)

// ReceiptController handles receipt endpoints.
type ReceiptController struct {
	createUseCase *receipt.CreateReceiptUseCase
	getUseCase    *receipt.GetReceiptUseCase
	assignUseCase *receipt.AssignItemUseCase
	splitUseCase  *split.CalculateSplitUseCase
}

// NewReceiptController creates a new receipt controller instance.
func NewReceiptController(
	createUseCase *receipt.CreateReceiptUseCase,
	getUseCase *receipt.GetReceiptUseCase,
	assignUseCase *receipt.AssignItemUseCase,
	splitUseCase *split.CalculateSplitUseCase,
) *ReceiptController {
	return &ReceiptController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		assignUseCase: assignUseCase,
		splitUseCase:  splitUseCase,
	}
}

// Create handles POST /receipts requests.
func (c *ReceiptController) Create(ctx *gin.Context) {
	var req dto.CreateReceiptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badReceiptRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	input, msg := buildCreateReceiptInput(req)
	if msg != "" {
		badReceiptRequest(ctx, msg)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReceiptResponse(output.Receipt))
}

// Get handles GET /receipts/:id requests.
func (c *ReceiptController) Get(ctx *gin.Context) {
	receiptID, ok := parseReceiptID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), receipt.GetReceiptInput{ReceiptID: receiptID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReceiptResponse(output.Receipt))
}

// AssignItem handles PUT /receipts/:id/items/:itemId/assignees requests.
func (c *ReceiptController) AssignItem(ctx *gin.Context) {
	receiptID, ok := parseReceiptID(ctx)
	if !ok {
		return
	}

	itemID, err := uuid.Parse(ctx.Param("itemId"))
	if err != nil {
		badReceiptRequest(ctx, "Invalid item ID format")
		return
	}

	var req dto.AssignItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badReceiptRequest(ctx, "Invalid request body: "+err.Error())
		return
	}

	userIDs, err := dto.ParseIDs(req.UserIDs)
	if err != nil {
		badReceiptRequest(ctx, "Invalid user ID format")
		return
	}

	output, err := c.assignUseCase.Execute(ctx.Request.Context(), receipt.AssignItemInput{
		ReceiptID: receiptID,
		ItemID:    itemID,
		UserIDs:   userIDs,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAssignItemResponse(output))
}

// Split handles GET /receipts/:id/split requests.
func (c *ReceiptController) Split(ctx *gin.Context) {
	receiptID, ok := parseReceiptID(ctx)
	if !ok {
		return
	}

	output, err := c.splitUseCase.Execute(ctx.Request.Context(), split.CalculateSplitInput{
		ReceiptID: receiptID,
		Policy:    ctx.Query("policy"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSplitResponse(output))
}

// buildCreateReceiptInput converts the request, returning a message when a field is malformed.
func buildCreateReceiptInput(req dto.CreateReceiptRequest) (receipt.CreateReceiptInput, string) {
	var input receipt.CreateReceiptInput

	uploaderID, err := uuid.Parse(req.UploaderID)
	if err != nil {
		return input, "Invalid uploader ID format"
	}
	input.UploaderID = uploaderID

	if req.StoreID != nil {
		storeID, err := uuid.Parse(*req.StoreID)
		if err != nil {
			return input, "Invalid store ID format"
		}
		input.StoreID = &storeID
	}

	if input.PurchaseDate, err = dto.ParsePurchaseDate(req.PurchaseDate); err != nil {
		return input, "Invalid purchase date, expected YYYY-MM-DD"
	}

	if input.ParticipantIDs, err = dto.ParseIDs(req.ParticipantIDs); err != nil {
		return input, "Invalid participant ID format"
	}

	for _, item := range req.Items {
		price, err := entity.ParseMoney(item.UnitPrice)
		if err != nil {
			return input, "Invalid unit price for item " + item.Name
		}
		assignees, err := dto.ParseIDs(item.AssigneeIDs)
		if err != nil {
			return input, "Invalid assignee ID format"
		}
		input.Items = append(input.Items, receipt.ItemInput{
			Name:        item.Name,
			UnitPrice:   price,
			Quantity:    item.Quantity,
			AssigneeIDs: assignees,
		})
	}

	return input, ""
}

func parseReceiptID(ctx *gin.Context) (uuid.UUID, bool) {
	receiptID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badReceiptRequest(ctx, "Invalid receipt ID format")
		return uuid.Nil, false
	}
	return receiptID, true
}

func badReceiptRequest(ctx *gin.Context, message string) {
	respondError(ctx, http.StatusBadRequest, message, string(domainerror.ErrCodeMissingReceiptFields))
}
