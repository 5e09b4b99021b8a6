package dto

import (
	"time"

	"github.com/receipt-split/backend/internal/application/usecase/settlement"
	"github.com/receipt-split/backend/internal/application/usecase/split"
	"github.com/receipt-split/backend/internal/domain/entity"
)

// SettleReceiptRequest represents the request body for settling a receipt.
type SettleReceiptRequest struct {
	Policy     string `json:"policy" binding:"required"`
	UseDeposit *bool  `json:"use_deposit,omitempty"` // Defaults to true
}

// ShareResponse is one user's share of a split.
type ShareResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// SplitResponse represents the response for a split calculation.
type SplitResponse struct {
	ReceiptID         string          `json:"receipt_id"`
	Policy            string          `json:"policy"`
	Total             string          `json:"total"`
	Shares            []ShareResponse `json:"shares"`
	AllItemsAssigned  bool            `json:"all_items_assigned"`
	UnassignedItemIDs []string        `json:"unassigned_item_ids"`
}

// PaymentLineResponse is one user's line of a payment summary.
type PaymentLineResponse struct {
	UserID          string `json:"user_id"`
	Name            string `json:"name"`
	Owed            string `json:"owed"`
	Balance         string `json:"balance"`
	Shortage        string `json:"shortage"`
	CanPayByDeposit bool   `json:"can_pay_by_deposit"`
}

// PaymentSummaryResponse represents the response for a payment summary.
type PaymentSummaryResponse struct {
	ReceiptID          string                `json:"receipt_id"`
	Total              string                `json:"total"`
	AllItemsAssigned   bool                  `json:"all_items_assigned"`
	AllCanPayByDeposit bool                  `json:"all_can_pay_by_deposit"`
	Lines              []PaymentLineResponse `json:"lines"`
}

// TransactionResultResponse is one user's settlement outcome.
type TransactionResultResponse struct {
	UserID      string  `json:"user_id"`
	Name        string  `json:"name,omitempty"`
	Owed        string  `json:"owed"`
	Success     bool    `json:"success"`
	AmountPaid  string  `json:"amount_paid"`
	DepositUsed string  `json:"deposit_used"`
	CashPaid    string  `json:"cash_paid"`
	Shortage    *string `json:"shortage,omitempty"`
}

// SettlementResponse represents a settlement in API responses.
type SettlementResponse struct {
	ID          string                      `json:"id"`
	ReceiptID   string                      `json:"receipt_id"`
	StoreID     *string                     `json:"store_id,omitempty"`
	Policy      string                      `json:"policy"`
	UseDeposit  bool                        `json:"use_deposit"`
	RequestedBy *string                     `json:"requested_by,omitempty"`
	Succeeded   bool                        `json:"succeeded"`
	Results     []TransactionResultResponse `json:"results"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// SettlementListResponse represents the response for listing settlements.
type SettlementListResponse struct {
	Settlements []SettlementResponse `json:"settlements"`
}

// ToSplitResponse converts a split calculation to a SplitResponse DTO.
func ToSplitResponse(output *split.CalculateSplitOutput) SplitResponse {
	response := SplitResponse{
		ReceiptID:         output.Receipt.ID.String(),
		Policy:            string(output.Policy),
		Total:             formatMoney(output.Total),
		Shares:            make([]ShareResponse, 0, output.Split.Len()),
		AllItemsAssigned:  output.AllItemsAssigned,
		UnassignedItemIDs: formatIDs(output.UnassignedItems),
	}
	for _, u := range output.Split.Users() {
		response.Shares = append(response.Shares, ShareResponse{
			UserID: u.ID.String(),
			Name:   u.Name,
			Amount: formatMoney(output.Split.Amount(u.ID)),
		})
	}
	return response
}

// ToPaymentSummaryResponse converts a payment summary to a PaymentSummaryResponse DTO.
func ToPaymentSummaryResponse(output *settlement.GetPaymentSummaryOutput) PaymentSummaryResponse {
	response := PaymentSummaryResponse{
		ReceiptID:          output.ReceiptID.String(),
		Total:              formatMoney(output.Total),
		AllItemsAssigned:   output.AllItemsAssigned,
		AllCanPayByDeposit: output.AllCanPayByDeposit,
		Lines:              make([]PaymentLineResponse, 0, len(output.Lines)),
	}
	for _, line := range output.Lines {
		response.Lines = append(response.Lines, PaymentLineResponse{
			UserID:          line.User.ID.String(),
			Name:            line.User.Name,
			Owed:            formatMoney(line.Owed),
			Balance:         formatMoney(line.Balance),
			Shortage:        formatMoney(line.Shortage),
			CanPayByDeposit: line.CanPayByDeposit,
		})
	}
	return response
}

// ToSettlementResponse converts a domain Settlement entity to a SettlementResponse DTO.
func ToSettlementResponse(s *entity.Settlement) SettlementResponse {
	response := SettlementResponse{
		ID:         s.ID.String(),
		ReceiptID:  s.ReceiptID.String(),
		Policy:     string(s.Policy),
		UseDeposit: s.UseDeposit,
		Succeeded:  s.Succeeded(),
		Results:    make([]TransactionResultResponse, 0, len(s.Entries)),
		CreatedAt:  s.CreatedAt,
	}
	if s.StoreID != nil {
		storeID := s.StoreID.String()
		response.StoreID = &storeID
	}
	if s.RequestedBy != nil {
		requestedBy := s.RequestedBy.String()
		response.RequestedBy = &requestedBy
	}
	for _, e := range s.Entries {
		response.Results = append(response.Results, TransactionResultResponse{
			UserID:      e.UserID.String(),
			Owed:        formatMoney(e.Owed),
			Success:     e.Result.Success,
			AmountPaid:  formatMoney(e.Result.AmountPaid),
			DepositUsed: formatMoney(e.Result.DepositUsed),
			CashPaid:    formatMoney(e.Result.CashPaid),
		})
	}
	return response
}

// ToSettleReceiptResponse converts a settle output, adding user names and shortages.
func ToSettleReceiptResponse(output *settlement.SettleReceiptOutput) SettlementResponse {
	response := ToSettlementResponse(output.Settlement)

	names := make(map[string]string, output.Results.Len())
	for _, u := range output.Results.Users() {
		names[u.ID.String()] = u.Name
	}
	for i := range response.Results {
		r := &response.Results[i]
		r.Name = names[r.UserID]
	}
	for i, e := range output.Settlement.Entries {
		if shortage, ok := output.Shortages[e.UserID]; ok {
			value := formatMoney(shortage)
			response.Results[i].Shortage = &value
		}
	}
	return response
}

// ToSettlementListResponse converts settlements to a SettlementListResponse DTO.
func ToSettlementListResponse(settlements []*entity.Settlement) SettlementListResponse {
	response := SettlementListResponse{
		Settlements: make([]SettlementResponse, 0, len(settlements)),
	}
	for _, s := range settlements {
		response.Settlements = append(response.Settlements, ToSettlementResponse(s))
	}
	return response
}
