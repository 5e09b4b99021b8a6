package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionResult is the outcome of one settlement attempt for one user.
// A successful result satisfies AmountPaid == DepositUsed + CashPaid; a failed
// result carries zero amounts.
type TransactionResult struct {
	Success     bool
	AmountPaid  decimal.Decimal
	DepositUsed decimal.Decimal
	CashPaid    decimal.Decimal
}

// FailedTransaction returns a failed result with zero amounts.
func FailedTransaction() TransactionResult {
	return TransactionResult{
		AmountPaid:  decimal.Zero,
		DepositUsed: decimal.Zero,
		CashPaid:    decimal.Zero,
	}
}

// DepositTransaction returns a successful result paid entirely from the balance.
func DepositTransaction(amount decimal.Decimal) TransactionResult {
	return TransactionResult{
		Success:     true,
		AmountPaid:  amount,
		DepositUsed: amount,
		CashPaid:    decimal.Zero,
	}
}

// CashTransaction returns a successful result paid entirely in cash.
func CashTransaction(amount decimal.Decimal) TransactionResult {
	return TransactionResult{
		Success:     true,
		AmountPaid:  amount,
		DepositUsed: decimal.Zero,
		CashPaid:    amount,
	}
}

// PaidByDeposit reports whether a non-zero amount was taken from the balance.
func (r TransactionResult) PaidByDeposit() bool {
	return r.Success && r.DepositUsed.IsPositive()
}

// PaidByCash reports whether a non-zero amount was paid in cash.
func (r TransactionResult) PaidByCash() bool {
	return r.Success && r.CashPaid.IsPositive()
}

// TransactionResults maps users to their results in settlement order.
type TransactionResults struct {
	users   []*User
	results map[uuid.UUID]TransactionResult
}

// NewTransactionResults creates an empty TransactionResults.
func NewTransactionResults() *TransactionResults {
	return &TransactionResults{
		results: make(map[uuid.UUID]TransactionResult),
	}
}

// Set records the result for a user, replacing any previous one.
func (t *TransactionResults) Set(user *User, result TransactionResult) {
	if _, ok := t.results[user.ID]; !ok {
		t.users = append(t.users, user)
	}
	t.results[user.ID] = result
}

// Get returns the user's result.
func (t *TransactionResults) Get(userID uuid.UUID) (TransactionResult, bool) {
	result, ok := t.results[userID]
	return result, ok
}

// Users returns the users in settlement order.
func (t *TransactionResults) Users() []*User {
	users := make([]*User, len(t.users))
	copy(users, t.users)
	return users
}

// Len returns the number of results.
func (t *TransactionResults) Len() int {
	return len(t.users)
}

// AllSucceeded reports whether every result succeeded.
func (t *TransactionResults) AllSucceeded() bool {
	for _, result := range t.results {
		if !result.Success {
			return false
		}
	}
	return true
}

// DepositTotal returns the sum of deposits used across all results.
func (t *TransactionResults) DepositTotal() decimal.Decimal {
	total := decimal.Zero
	for _, result := range t.results {
		total = total.Add(result.DepositUsed)
	}
	return total
}

// Debited returns the users whose balance was reduced, in settlement order.
func (t *TransactionResults) Debited() []*User {
	var users []*User
	for _, u := range t.users {
		if t.results[u.ID].PaidByDeposit() {
			users = append(users, u)
		}
	}
	return users
}
