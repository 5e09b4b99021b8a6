package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// SettlementPolicy selects how a receipt is charged.
type SettlementPolicy string

const (
	// SettlementSinglePayer charges the whole receipt to the uploader.
	SettlementSinglePayer SettlementPolicy = "single_payer"
	// SettlementBestEffort charges every user independently, keeping partial successes.
	SettlementBestEffort SettlementPolicy = "best_effort"
	// SettlementAllOrNothing charges nobody unless every user can pay.
	SettlementAllOrNothing SettlementPolicy = "all_or_nothing"
)

// ParseSettlementPolicy validates a policy name.
func ParseSettlementPolicy(value string) (SettlementPolicy, error) {
	switch p := SettlementPolicy(value); p {
	case SettlementSinglePayer, SettlementBestEffort, SettlementAllOrNothing:
		return p, nil
	}
	return "", domainerror.ErrInvalidSettlementPolicy
}

// IsMultiPayer reports whether the policy charges each assignee separately.
func (p SettlementPolicy) IsMultiPayer() bool {
	return p == SettlementBestEffort || p == SettlementAllOrNothing
}

// SplitPolicy selects which items contribute to a split.
type SplitPolicy string

const (
	SplitByAssignment SplitPolicy = "assignment"
	SplitIndividual   SplitPolicy = "individual"
	SplitShared       SplitPolicy = "shared"
)

// ParseSplitPolicy validates a split policy name; empty means assignment.
func ParseSplitPolicy(value string) (SplitPolicy, error) {
	if value == "" {
		return SplitByAssignment, nil
	}
	switch p := SplitPolicy(value); p {
	case SplitByAssignment, SplitIndividual, SplitShared:
		return p, nil
	}
	return "", domainerror.ErrInvalidSplitPolicy
}

// SettlementEntry is the recorded outcome for one user.
type SettlementEntry struct {
	UserID uuid.UUID
	Owed   decimal.Decimal
	Result TransactionResult
}

// Settlement is the history record of one settlement run.
type Settlement struct {
	ID          uuid.UUID
	ReceiptID   uuid.UUID
	StoreID     *uuid.UUID
	Policy      SettlementPolicy
	UseDeposit  bool
	RequestedBy *uuid.UUID
	Entries     []SettlementEntry
	CreatedAt   time.Time
}

// NewSettlement builds a record from the owed amounts and the results, in result order.
func NewSettlement(receipt *Receipt, policy SettlementPolicy, useDeposit bool, owed *Split, results *TransactionResults) *Settlement {
	s := &Settlement{
		ID:         uuid.New(),
		ReceiptID:  receipt.ID,
		StoreID:    receipt.StoreID,
		Policy:     policy,
		UseDeposit: useDeposit,
		CreatedAt:  time.Now().UTC(),
	}

	for _, user := range results.Users() {
		result, _ := results.Get(user.ID)
		s.Entries = append(s.Entries, SettlementEntry{
			UserID: user.ID,
			Owed:   owed.Amount(user.ID),
			Result: result,
		})
	}
	return s
}

// Succeeded reports whether every entry succeeded.
func (s *Settlement) Succeeded() bool {
	for _, e := range s.Entries {
		if !e.Result.Success {
			return false
		}
	}
	return true
}
