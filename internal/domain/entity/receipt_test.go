package entity

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/receipt-split/backend/internal/domain/error"
)

func TestNewReceipt(t *testing.T) {
	if _, err := NewReceipt(nil, nil); !errors.Is(err, domainerror.ErrMissingUploader) {
		t.Errorf("expected ErrMissingUploader, got %v", err)
	}

	uploader := mustUser(t, "철수", 0)
	receipt, err := NewReceipt(uploader, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !receipt.CalculateTotal().IsZero() {
		t.Errorf("expected empty receipt total 0, got %s", receipt.CalculateTotal())
	}
	if len(receipt.UnassignedItems()) != 0 {
		t.Error("expected no unassigned items on an empty receipt")
	}
}

func TestReceipt_AddItemAndTotal(t *testing.T) {
	receipt, _ := NewReceipt(mustUser(t, "철수", 0), nil)

	if _, err := receipt.AddItem("피자", decimal.NewFromInt(20000), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := receipt.AddItem("커피", decimal.NewFromInt(4500), 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := receipt.AddItem("", decimal.NewFromInt(1000), 1); !errors.Is(err, domainerror.ErrEmptyItemName) {
		t.Errorf("expected ErrEmptyItemName, got %v", err)
	}

	if len(receipt.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(receipt.Items))
	}
	if total := receipt.CalculateTotal(); !total.Equal(decimal.NewFromInt(29000)) {
		t.Errorf("expected total 29000, got %s", total)
	}
}

func TestReceipt_Participants(t *testing.T) {
	uploader := mustUser(t, "철수", 0)
	friend := mustUser(t, "영희", 0)
	receipt, _ := NewReceipt(uploader, nil)

	if !receipt.AddParticipant(friend) {
		t.Error("expected participant to be added")
	}
	if receipt.AddParticipant(friend) {
		t.Error("expected duplicate participant to be ignored")
	}
	if !receipt.HasParticipant(friend.ID) {
		t.Error("expected HasParticipant to find the participant")
	}
	if receipt.HasParticipant(uploader.ID) {
		t.Error("uploader is not a participant until added")
	}
}

func TestReceipt_FindItemAndUnassigned(t *testing.T) {
	receipt, _ := NewReceipt(mustUser(t, "철수", 0), nil)
	pizza, _ := receipt.AddItem("피자", decimal.NewFromInt(20000), 1)
	coffee, _ := receipt.AddItem("커피", decimal.NewFromInt(4500), 1)
	pizza.AssignToUser(receipt.Uploader)

	if found, ok := receipt.FindItem(coffee.ID); !ok || found != coffee {
		t.Error("expected FindItem to return the coffee item")
	}
	if _, ok := receipt.FindItem(uuid.New()); ok {
		t.Error("expected FindItem to miss an unknown ID")
	}

	unassigned := receipt.UnassignedItems()
	if len(unassigned) != 1 || unassigned[0] != coffee {
		t.Errorf("expected only coffee unassigned, got %v", unassigned)
	}
}

func TestReceipt_Users(t *testing.T) {
	uploader := mustUser(t, "철수", 0)
	participant := mustUser(t, "영희", 0)
	assignee := mustUser(t, "민수", 0)

	receipt, _ := NewReceipt(uploader, nil)
	receipt.AddParticipant(participant)
	receipt.AddParticipant(uploader)
	item, _ := receipt.AddItem("피자", decimal.NewFromInt(20000), 1)
	item.AssignToUser(assignee)
	item.AssignToUser(participant)

	users := receipt.Users()
	expected := []*User{uploader, participant, assignee}
	if len(users) != len(expected) {
		t.Fatalf("expected %d users, got %d", len(expected), len(users))
	}
	for i := range expected {
		if users[i] != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i].Name, users[i].Name)
		}
	}
}
