package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/application/usecase/store"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/entrypoint/dto"
)

// StoreController handles store endpoints.
type StoreController struct {
	createUseCase    *store.CreateStoreUseCase
	getUseCase       *store.GetStoreUseCase
	configureUseCase *store.ConfigureCouponUseCase
}

// NewStoreController creates a new store controller instance.
func NewStoreController(
	createUseCase *store.CreateStoreUseCase,
	getUseCase *store.GetStoreUseCase,
	configureUseCase *store.ConfigureCouponUseCase,
) *StoreController {
	return &StoreController{
		createUseCase:    createUseCase,
		getUseCase:       getUseCase,
		configureUseCase: configureUseCase,
	}
}

// Create handles POST /stores requests.
func (c *StoreController) Create(ctx *gin.Context) {
	var req dto.CreateStoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingStoreFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), store.CreateStoreInput{
		Name:          req.Name,
		CouponEnabled: req.CouponEnabled,
		CouponGoal:    req.CouponGoal,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToStoreResponse(output.Store))
}

// Get handles GET /stores/:id requests.
func (c *StoreController) Get(ctx *gin.Context) {
	storeID, ok := parseStoreID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), store.GetStoreInput{StoreID: storeID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStoreResponse(output.Store))
}

// ConfigureCoupon handles PATCH /stores/:id/coupon requests.
func (c *StoreController) ConfigureCoupon(ctx *gin.Context) {
	storeID, ok := parseStoreID(ctx)
	if !ok {
		return
	}

	var req dto.ConfigureCouponRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingStoreFields))
		return
	}

	output, err := c.configureUseCase.Execute(ctx.Request.Context(), store.ConfigureCouponInput{
		StoreID: storeID,
		Enabled: req.Enabled,
		Goal:    req.Goal,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStoreResponse(output.Store))
}

func parseStoreID(ctx *gin.Context) (uuid.UUID, bool) {
	storeID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid store ID format", string(domainerror.ErrCodeMissingStoreFields))
		return uuid.Nil, false
	}
	return storeID, true
}
