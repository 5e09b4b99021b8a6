package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/usecase/coupon"
	"github.com/receipt-split/backend/internal/application/usecase/user"
	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/entrypoint/dto"
)

// UserController handles user endpoints.
type UserController struct {
	createUseCase      *user.CreateUserUseCase
	getUseCase         *user.GetUserUseCase
	listUseCase        *user.ListUsersUseCase
	depositUseCase     *user.DepositBalanceUseCase
	listCouponsUseCase *coupon.ListCouponsUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	createUseCase *user.CreateUserUseCase,
	getUseCase *user.GetUserUseCase,
	listUseCase *user.ListUsersUseCase,
	depositUseCase *user.DepositBalanceUseCase,
	listCouponsUseCase *coupon.ListCouponsUseCase,
) *UserController {
	return &UserController{
		createUseCase:      createUseCase,
		getUseCase:         getUseCase,
		listUseCase:        listUseCase,
		depositUseCase:     depositUseCase,
		listCouponsUseCase: listCouponsUseCase,
	}
}

// Create handles POST /users requests.
func (c *UserController) Create(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidUserFields))
		return
	}

	balance := decimal.Zero
	if req.InitialBalance != "" {
		parsed, err := entity.ParseMoney(req.InitialBalance)
		if err != nil {
			respondError(ctx, http.StatusBadRequest, "Invalid initial balance", string(domainerror.ErrCodeInvalidUserFields))
			return
		}
		balance = parsed
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), user.CreateUserInput{
		Name:           req.Name,
		Email:          req.Email,
		InitialBalance: balance,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUserResponse(output.User))
}

// List handles GET /users requests.
func (c *UserController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserListResponse(output.Users))
}

// Get handles GET /users/:id requests.
func (c *UserController) Get(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), user.GetUserInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// Deposit handles POST /users/:id/deposits requests.
func (c *UserController) Deposit(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidUserFields))
		return
	}

	amount, err := entity.ParseMoney(req.Amount)
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid amount", string(domainerror.ErrCodeInvalidUserFields))
		return
	}

	output, err := c.depositUseCase.Execute(ctx.Request.Context(), user.DepositBalanceInput{
		UserID: userID,
		Amount: amount,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(output.User))
}

// ListCoupons handles GET /users/:id/coupons requests.
func (c *UserController) ListCoupons(ctx *gin.Context) {
	userID, ok := parseUserID(ctx)
	if !ok {
		return
	}

	output, err := c.listCouponsUseCase.Execute(ctx.Request.Context(), coupon.ListCouponsInput{UserID: userID})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCouponListResponse(output.Coupons))
}

func parseUserID(ctx *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Invalid user ID format", string(domainerror.ErrCodeInvalidUserFields))
		return uuid.Nil, false
	}
	return userID, true
}
