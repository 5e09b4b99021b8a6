package entity

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// ReceiptItem represents a purchased line item and the users who consumed it.
type ReceiptItem struct {
	ID        uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int

	// assignedUsers keeps first-insertion order: the first assignee absorbs the split remainder.
	assignedUsers []*User
}

// NewReceiptItem creates a validated ReceiptItem with no assignees.
func NewReceiptItem(name string, unitPrice decimal.Decimal, quantity int) (*ReceiptItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainerror.ErrEmptyItemName
	}
	if unitPrice.IsNegative() {
		return nil, domainerror.ErrNegativePrice
	}
	if quantity < 1 {
		return nil, domainerror.ErrInvalidQuantity
	}

	return &ReceiptItem{
		ID:        uuid.New(),
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
	}, nil
}

// AssignToUser adds user to the assignees. Returns false when the user was already assigned.
func (i *ReceiptItem) AssignToUser(user *User) bool {
	if i.IsAssignedTo(user.ID) {
		return false
	}
	i.assignedUsers = append(i.assignedUsers, user)
	return true
}

// IsAssignedTo reports whether the user is an assignee.
func (i *ReceiptItem) IsAssignedTo(userID uuid.UUID) bool {
	for _, u := range i.assignedUsers {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// AssignedUsers returns the assignees in assignment order.
func (i *ReceiptItem) AssignedUsers() []*User {
	users := make([]*User, len(i.assignedUsers))
	copy(users, i.assignedUsers)
	return users
}

// IsAssigned reports whether at least one user is assigned.
func (i *ReceiptItem) IsAssigned() bool {
	return len(i.assignedUsers) > 0
}

// IsShared reports whether more than one user is assigned.
func (i *ReceiptItem) IsShared() bool {
	return len(i.assignedUsers) > 1
}

// CalculateTotal returns unit price times quantity.
func (i *ReceiptItem) CalculateTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalculatePerUserAmounts divides the item total among the assignees.
// Every assignee gets the total divided by the assignee count, truncated to the
// minor unit; the first assignee also gets the remainder, so the amounts always
// sum to the item total.
func (i *ReceiptItem) CalculatePerUserAmounts() *Split {
	split := NewSplit()
	n := len(i.assignedUsers)
	if n == 0 {
		return split
	}

	base, remainder := i.CalculateTotal().QuoRem(decimal.NewFromInt(int64(n)), MinorUnitPlaces)
	for idx, user := range i.assignedUsers {
		if idx == 0 {
			split.Add(user, base.Add(remainder))
			continue
		}
		split.Add(user, base)
	}
	return split
}
