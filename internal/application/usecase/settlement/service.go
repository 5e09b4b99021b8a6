// Package settlement contains the payment operations and settlement use cases.
package settlement

import (
	"github.com/shopspring/decimal"

	"github.com/receipt-split/backend/internal/application/usecase/split"
	"github.com/receipt-split/backend/internal/domain/entity"
)

// Service charges receipts to users' balances or records cash payments.
// It mutates only the *entity.User values reachable from the receipt.
type Service struct {
	splitter *split.Service
}

// NewService creates a new settlement Service.
func NewService(splitter *split.Service) *Service {
	return &Service{splitter: splitter}
}

// ProcessTransaction charges the whole receipt to its uploader.
func (s *Service) ProcessTransaction(receipt *entity.Receipt, useDeposit bool) entity.TransactionResult {
	total := receipt.CalculateTotal()
	if !useDeposit {
		return entity.CashTransaction(total)
	}

	uploader := receipt.Uploader
	if !uploader.CanAfford(total) {
		return entity.FailedTransaction()
	}
	if total.IsPositive() {
		if err := uploader.SubtractBalance(total); err != nil {
			return entity.FailedTransaction()
		}
	}
	return entity.DepositTransaction(total)
}

// HandlePartialPaymentFailures charges every assignee their share independently.
// Users who cannot afford their share fail without affecting anyone else, and
// successful debits are kept.
func (s *Service) HandlePartialPaymentFailures(receipt *entity.Receipt, useDeposit bool) *entity.TransactionResults {
	return s.ChargeIndependently(s.splitter.SplitByUserAssignment(receipt), useDeposit)
}

// ChargeIndependently applies HandlePartialPaymentFailures to owed amounts
// that were already computed.
func (s *Service) ChargeIndependently(owed *entity.Split, useDeposit bool) *entity.TransactionResults {
	results := entity.NewTransactionResults()

	for _, user := range owed.Users() {
		amount := owed.Amount(user.ID)
		if !useDeposit {
			results.Set(user, entity.CashTransaction(amount))
			continue
		}
		results.Set(user, charge(user, amount))
	}
	return results
}

// RollbackOnInsufficientFunds charges every assignee their share only when all
// of them can afford it. Otherwise every user gets a failed result and no
// balance changes.
func (s *Service) RollbackOnInsufficientFunds(receipt *entity.Receipt, useDeposit bool) *entity.TransactionResults {
	return s.ChargeAtomically(s.splitter.SplitByUserAssignment(receipt), useDeposit)
}

// ChargeAtomically applies RollbackOnInsufficientFunds to owed amounts that
// were already computed.
func (s *Service) ChargeAtomically(owed *entity.Split, useDeposit bool) *entity.TransactionResults {
	users := owed.Users()
	results := entity.NewTransactionResults()

	if !useDeposit {
		for _, user := range users {
			results.Set(user, entity.CashTransaction(owed.Amount(user.ID)))
		}
		return results
	}

	for _, user := range users {
		if !user.CanAfford(owed.Amount(user.ID)) {
			for _, u := range users {
				results.Set(u, entity.FailedTransaction())
			}
			return results
		}
	}

	for _, user := range users {
		results.Set(user, charge(user, owed.Amount(user.ID)))
	}
	return results
}

// charge debits amount from the user's balance. A zero amount succeeds
// without touching the balance.
func charge(user *entity.User, amount decimal.Decimal) entity.TransactionResult {
	if amount.IsZero() {
		return entity.DepositTransaction(decimal.Zero)
	}
	if !user.CanAfford(amount) {
		return entity.FailedTransaction()
	}
	if err := user.SubtractBalance(amount); err != nil {
		return entity.FailedTransaction()
	}
	return entity.DepositTransaction(amount)
}
