package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Split maps users to amounts, keyed by user ID and ordered by first appearance.
type Split struct {
	users   []*User
	amounts map[uuid.UUID]decimal.Decimal
}

// NewSplit creates an empty Split.
func NewSplit() *Split {
	return &Split{
		amounts: make(map[uuid.UUID]decimal.Decimal),
	}
}

// Add accumulates amount onto the user's running total.
func (s *Split) Add(user *User, amount decimal.Decimal) {
	current, ok := s.amounts[user.ID]
	if !ok {
		s.users = append(s.users, user)
		current = decimal.Zero
	}
	s.amounts[user.ID] = current.Add(amount)
}

// Merge accumulates every entry of other into s.
func (s *Split) Merge(other *Split) {
	for _, user := range other.users {
		s.Add(user, other.amounts[user.ID])
	}
}

// Amount returns the user's amount, or zero when the user is absent.
func (s *Split) Amount(userID uuid.UUID) decimal.Decimal {
	if amount, ok := s.amounts[userID]; ok {
		return amount
	}
	return decimal.Zero
}

// Without returns a copy of s without the given users, keeping the order.
func (s *Split) Without(userIDs map[uuid.UUID]bool) *Split {
	out := NewSplit()
	for _, user := range s.users {
		if !userIDs[user.ID] {
			out.Add(user, s.amounts[user.ID])
		}
	}
	return out
}

// Has reports whether the user appears in the split.
func (s *Split) Has(userID uuid.UUID) bool {
	_, ok := s.amounts[userID]
	return ok
}

// Users returns the users in first-appearance order.
func (s *Split) Users() []*User {
	users := make([]*User, len(s.users))
	copy(users, s.users)
	return users
}

// Len returns the number of users in the split.
func (s *Split) Len() int {
	return len(s.users)
}

// Total returns the sum of all amounts.
func (s *Split) Total() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range s.amounts {
		total = total.Add(amount)
	}
	return total
}
