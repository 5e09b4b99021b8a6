package adapter

import "github.com/receipt-split/backend/internal/domain/entity"

// SettlementObserver receives finished settlements, e.g. to record metrics.
type SettlementObserver interface {
	// ObserveSettlement is called once per committed settlement.
	ObserveSettlement(settlement *entity.Settlement)
}
