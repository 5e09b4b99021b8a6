package templates

import (
	"encoding/json"
	"fmt"

	"github.com/receipt-split/backend/internal/domain/entity"
	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// SettlementReceiptData fills the settlement_receipt template.
type SettlementReceiptData struct {
	UserName    string `json:"user_name"`
	ReceiptID   string `json:"receipt_id"`
	AmountPaid  string `json:"amount_paid"`
	DepositUsed string `json:"deposit_used"`
	CashPaid    string `json:"cash_paid"`
	Balance     string `json:"balance"`
}

// ShortageNoticeData fills the shortage_notice template.
type ShortageNoticeData struct {
	UserName  string `json:"user_name"`
	ReceiptID string `json:"receipt_id"`
	Owed      string `json:"owed"`
	Balance   string `json:"balance"`
	Shortage  string `json:"shortage"`
}

// Payload flattens template data into the map stored with a queued job.
func Payload(data any) (map[string]any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	payload := make(map[string]any)
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// Decode rebuilds the typed data of a template from a stored payload.
func Decode(kind entity.EmailTemplateType, payload map[string]any) (any, error) {
	var data any
	switch kind {
	case entity.TemplateSettlementReceipt:
		data = &SettlementReceiptData{}
	case entity.TemplateShortageNotice:
		data = &ShortageNoticeData{}
	default:
		return nil, fmt.Errorf("%w: %q", domainerror.ErrUnknownTemplate, kind)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", kind, err)
	}
	return data, nil
}
