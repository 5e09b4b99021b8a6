package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

// Receipt represents an uploaded purchase receipt shared among participants.
// Callers must not mutate a receipt once settlement has started.
type Receipt struct {
	ID           uuid.UUID
	Uploader     *User
	StoreID      *uuid.UUID // Optional, required only for coupon awards
	Participants []*User
	Items        []*ReceiptItem
	PurchaseDate *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewReceipt creates a new Receipt uploaded by the given user.
func NewReceipt(uploader *User, storeID *uuid.UUID) (*Receipt, error) {
	if uploader == nil {
		return nil, domainerror.ErrMissingUploader
	}

	now := time.Now().UTC()
	return &Receipt{
		ID:        uuid.New(),
		Uploader:  uploader,
		StoreID:   storeID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// AddItem validates and appends a new item.
func (r *Receipt) AddItem(name string, unitPrice decimal.Decimal, quantity int) (*ReceiptItem, error) {
	item, err := NewReceiptItem(name, unitPrice, quantity)
	if err != nil {
		return nil, err
	}
	r.Items = append(r.Items, item)
	return item, nil
}

// AddParticipant adds user to the participants. Returns false when already present.
func (r *Receipt) AddParticipant(user *User) bool {
	if r.HasParticipant(user.ID) {
		return false
	}
	r.Participants = append(r.Participants, user)
	return true
}

// HasParticipant reports whether the user is a participant.
func (r *Receipt) HasParticipant(userID uuid.UUID) bool {
	for _, p := range r.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// FindItem returns the item with the given ID.
func (r *Receipt) FindItem(itemID uuid.UUID) (*ReceiptItem, bool) {
	for _, item := range r.Items {
		if item.ID == itemID {
			return item, true
		}
	}
	return nil, false
}

// UnassignedItems returns the items nobody has been assigned to.
func (r *Receipt) UnassignedItems() []*ReceiptItem {
	var items []*ReceiptItem
	for _, item := range r.Items {
		if !item.IsAssigned() {
			items = append(items, item)
		}
	}
	return items
}

// CalculateTotal returns the sum of every item total.
func (r *Receipt) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.CalculateTotal())
	}
	return total
}

// Users returns the uploader, participants and assignees, each once, in that order.
func (r *Receipt) Users() []*User {
	seen := make(map[uuid.UUID]bool)
	var users []*User
	add := func(u *User) {
		if u == nil || seen[u.ID] {
			return
		}
		seen[u.ID] = true
		users = append(users, u)
	}

	add(r.Uploader)
	for _, p := range r.Participants {
		add(p)
	}
	for _, item := range r.Items {
		for _, u := range item.assignedUsers {
			add(u)
		}
	}
	return users
}
