package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// User represents a participant of shared purchases with a prepaid balance.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string // Optional, used for settlement notifications
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a new User with the given initial balance.
func NewUser(name string, initialBalance decimal.Decimal) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.ErrEmptyUserName
	}
	if initialBalance.IsNegative() {
		return nil, domainerror.ErrNegativeInitialBalance
	}

	now := time.Now().UTC()
	return &User{
		ID:        uuid.New(),
		Name:      name,
		Balance:   initialBalance,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddBalance tops up the balance by a positive amount.
func (u *User) AddBalance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.ErrNonPositiveAmount
	}
	u.Balance = u.Balance.Add(amount)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// SubtractBalance debits a positive amount that does not exceed the balance.
func (u *User) SubtractBalance(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.ErrNonPositiveAmount
	}
	if amount.GreaterThan(u.Balance) {
		return domainerror.ErrInsufficientBalance
	}
	u.Balance = u.Balance.Sub(amount)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// CanAfford reports whether the balance covers amount.
func (u *User) CanAfford(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}

// Shortage returns how much is missing to cover amount, or zero.
func (u *User) Shortage(amount decimal.Decimal) decimal.Decimal {
	if u.CanAfford(amount) {
		return decimal.Zero
	}
	return amount.Sub(u.Balance)
}
