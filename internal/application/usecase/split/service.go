// Package split contains the receipt split calculations and use cases.
package split

import "github.com/receipt-split/backend/internal/domain/entity"

// Service aggregates per-item splits into per-user amounts for a receipt.
// It is stateless and never mutates the receipt.
type Service struct{}

// NewService creates a new split Service.
func NewService() *Service {
	return &Service{}
}

// SplitByUserAssignment sums every item's per-user split.
// Unassigned items contribute nothing.
func (s *Service) SplitByUserAssignment(receipt *entity.Receipt) *entity.Split {
	result := entity.NewSplit()
	for _, item := range receipt.Items {
		result.Merge(item.CalculatePerUserAmounts())
	}
	return result
}

// CalculateIndividualAmounts charges each single-assignee item in full to its assignee.
func (s *Service) CalculateIndividualAmounts(receipt *entity.Receipt) *entity.Split {
	result := entity.NewSplit()
	for _, item := range receipt.Items {
		users := item.AssignedUsers()
		if len(users) != 1 {
			continue
		}
		result.Add(users[0], item.CalculateTotal())
	}
	return result
}

// HandleSharedItemsProportionally splits only the items with more than one assignee.
func (s *Service) HandleSharedItemsProportionally(receipt *entity.Receipt) *entity.Split {
	result := entity.NewSplit()
	for _, item := range receipt.Items {
		if !item.IsShared() {
			continue
		}
		result.Merge(item.CalculatePerUserAmounts())
	}
	return result
}

// ValidateAllItemsAssigned reports whether every item has at least one assignee.
func (s *Service) ValidateAllItemsAssigned(receipt *entity.Receipt) bool {
	for _, item := range receipt.Items {
		if !item.IsAssigned() {
			return false
		}
	}
	return true
}

// SplitByPolicy dispatches to the aggregation matching policy.
func (s *Service) SplitByPolicy(receipt *entity.Receipt, policy entity.SplitPolicy) *entity.Split {
	switch policy {
	case entity.SplitIndividual:
		return s.CalculateIndividualAmounts(receipt)
	case entity.SplitShared:
		return s.HandleSharedItemsProportionally(receipt)
	default:
		return s.SplitByUserAssignment(receipt)
	}
}
