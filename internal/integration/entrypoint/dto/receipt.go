package dto

import (
	"time"

	"github.com/receipt-split/backend/internal/application/usecase/receipt"
	"github.com/receipt-split/backend/internal/domain/entity"
)

// CreateReceiptItemRequest represents one line item in a receipt creation request.
type CreateReceiptItemRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=200"`
	UnitPrice   string   `json:"unit_price" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required"`
	AssigneeIDs []string `json:"assignee_ids,omitempty" binding:"omitempty,dive,uuid"`
}

// CreateReceiptRequest represents the request body for receipt creation.
type CreateReceiptRequest struct {
	UploaderID     string                     `json:"uploader_id" binding:"required,uuid"`
	StoreID        *string                    `json:"store_id,omitempty" binding:"omitempty,uuid"`
	PurchaseDate   *string                    `json:"purchase_date,omitempty"`
	ParticipantIDs []string                   `json:"participant_ids,omitempty" binding:"omitempty,dive,uuid"`
	Items          []CreateReceiptItemRequest `json:"items" binding:"dive"`
}

// AssignItemRequest represents the request body for assigning users to an item.
type AssignItemRequest struct {
	UserIDs []string `json:"user_ids" binding:"required,min=1,dive,uuid"`
}

// UserSummary is the short form of a user embedded in other responses.
type UserSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ReceiptItemResponse represents a receipt item in API responses.
type ReceiptItemResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	UnitPrice   string   `json:"unit_price"`
	Quantity    int      `json:"quantity"`
	Total       string   `json:"total"`
	AssigneeIDs []string `json:"assignee_ids"`
}

// ReceiptResponse represents a receipt in API responses.
type ReceiptResponse struct {
	ID           string                `json:"id"`
	Uploader     UserSummary           `json:"uploader"`
	StoreID      *string               `json:"store_id,omitempty"`
	PurchaseDate *string               `json:"purchase_date,omitempty"`
	Participants []UserSummary         `json:"participants"`
	Items        []ReceiptItemResponse `json:"items"`
	Total        string                `json:"total"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// AssignItemResponse represents the response for an item assignment.
type AssignItemResponse struct {
	Item  ReceiptItemResponse `json:"item"`
	Added []string            `json:"added"`
}

// ParsePurchaseDate parses an optional YYYY-MM-DD date.
func ParsePurchaseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	date, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

// ToUserSummary converts a user to its short form.
func ToUserSummary(u *entity.User) UserSummary {
	return UserSummary{ID: u.ID.String(), Name: u.Name}
}

// ToReceiptItemResponse converts a domain ReceiptItem to a ReceiptItemResponse DTO.
func ToReceiptItemResponse(item *entity.ReceiptItem) ReceiptItemResponse {
	response := ReceiptItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		UnitPrice:   formatMoney(item.UnitPrice),
		Quantity:    item.Quantity,
		Total:       formatMoney(item.CalculateTotal()),
		AssigneeIDs: []string{},
	}
	for _, u := range item.AssignedUsers() {
		response.AssigneeIDs = append(response.AssigneeIDs, u.ID.String())
	}
	return response
}

// ToReceiptResponse converts a domain Receipt entity to a ReceiptResponse DTO.
func ToReceiptResponse(r *entity.Receipt) ReceiptResponse {
	response := ReceiptResponse{
		ID:           r.ID.String(),
		Uploader:     ToUserSummary(r.Uploader),
		Participants: make([]UserSummary, 0, len(r.Participants)),
		Items:        make([]ReceiptItemResponse, 0, len(r.Items)),
		Total:        formatMoney(r.CalculateTotal()),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}

	if r.StoreID != nil {
		storeID := r.StoreID.String()
		response.StoreID = &storeID
	}
	if r.PurchaseDate != nil {
		date := r.PurchaseDate.Format(dateLayout)
		response.PurchaseDate = &date
	}
	for _, p := range r.Participants {
		response.Participants = append(response.Participants, ToUserSummary(p))
	}
	for _, item := range r.Items {
		response.Items = append(response.Items, ToReceiptItemResponse(item))
	}
	return response
}

// ToAssignItemResponse converts an assignment output to an AssignItemResponse DTO.
func ToAssignItemResponse(output *receipt.AssignItemOutput) AssignItemResponse {
	return AssignItemResponse{
		Item:  ToReceiptItemResponse(output.Item),
		Added: formatIDs(output.Added),
	}
}
