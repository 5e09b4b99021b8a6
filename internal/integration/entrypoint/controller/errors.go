package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
	"github.com/receipt-split/backend/internal/integration/entrypoint/dto"
)

// handleError writes the response for an error returned by a use case.
func handleError(ctx *gin.Context, err error) {
	var (
		userErr       *domainerror.UserError
		receiptErr    *domainerror.ReceiptError
		storeErr      *domainerror.StoreError
		settlementErr *domainerror.SettlementError
	)

	switch {
	case errors.As(err, &settlementErr):
		respondError(ctx, getStatusCodeForSettlementError(settlementErr.Code), settlementErr.Message, string(settlementErr.Code))
	case errors.As(err, &receiptErr):
		respondError(ctx, getStatusCodeForReceiptError(receiptErr.Code), receiptErr.Message, string(receiptErr.Code))
	case errors.As(err, &storeErr):
		respondError(ctx, getStatusCodeForStoreError(storeErr.Code), storeErr.Message, string(storeErr.Code))
	case errors.As(err, &userErr):
		respondError(ctx, getStatusCodeForUserError(userErr.Code), userErr.Message, string(userErr.Code))
	case domainerror.IsValidation(err):
		respondError(ctx, http.StatusBadRequest, err.Error(), "")
	case domainerror.IsPrecondition(err):
		respondError(ctx, http.StatusUnprocessableEntity, err.Error(), "")
	default:
		slog.Error("request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "error", err)
		respondError(ctx, http.StatusInternalServerError, "An internal error occurred", "")
	}
}

func respondError(ctx *gin.Context, status int, message, code string) {
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// getStatusCodeForUserError maps user error codes to HTTP status codes.
func getStatusCodeForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNonPositiveAmount, domainerror.ErrCodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeEmptyUserName,
		domainerror.ErrCodeNegativeInitialBalance,
		domainerror.ErrCodeInvalidUserFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForReceiptError maps receipt error codes to HTTP status codes.
func getStatusCodeForReceiptError(code domainerror.ReceiptErrorCode) int {
	switch code {
	case domainerror.ErrCodeReceiptNotFound, domainerror.ErrCodeReceiptItemNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeMissingUploader,
		domainerror.ErrCodeEmptyItemName,
		domainerror.ErrCodeNegativePrice,
		domainerror.ErrCodeInvalidQuantity,
		domainerror.ErrCodeInvalidSplitPolicy,
		domainerror.ErrCodeMissingReceiptFields,
		domainerror.ErrCodeUnknownAssignee:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForStoreError maps store error codes to HTTP status codes.
func getStatusCodeForStoreError(code domainerror.StoreErrorCode) int {
	switch code {
	case domainerror.ErrCodeStoreNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeStoreAlreadyExists:
		return http.StatusConflict
	case domainerror.ErrCodeEmptyStoreName,
		domainerror.ErrCodeInvalidCouponGoal,
		domainerror.ErrCodeMissingStoreFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// getStatusCodeForSettlementError maps settlement error codes to HTTP status codes.
func getStatusCodeForSettlementError(code domainerror.SettlementErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnassignedItems:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeSettlementInProgress, domainerror.ErrCodeReceiptAlreadySettled:
		return http.StatusConflict
	case domainerror.ErrCodeInvalidSettlementPolicy, domainerror.ErrCodeMissingSettlementFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
