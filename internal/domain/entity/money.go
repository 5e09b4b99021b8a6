// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// MinorUnitPlaces is the number of decimal places of the smallest currency unit.
// Receipts are settled in whole won.
const MinorUnitPlaces int32 = 0

// ParseMoney parses an exact decimal string into a money amount. Amounts with
// more places than MinorUnitPlaces are rejected rather than rounded.
func ParseMoney(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.Equal(d.Truncate(MinorUnitPlaces)) {
		return decimal.Zero, fmt.Errorf("%w: %s", domainerror.ErrSubMinorUnit, value)
	}
	return d, nil
}
