// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// dateLayout is the wire format of calendar dates.
const dateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// formatMoney renders an amount as an exact decimal string.
func formatMoney(amount decimal.Decimal) string {
	return amount.String()
}

func formatIDs(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

// ParseIDs parses a list of UUID strings, stopping at the first invalid one.
func ParseIDs(values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
