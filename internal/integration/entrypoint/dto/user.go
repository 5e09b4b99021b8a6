package dto

import (
	"time"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Name           string `json:"name" binding:"required,min=1,max=100"`
	Email          string `json:"email,omitempty" binding:"omitempty,email"`
	InitialBalance string `json:"initial_balance,omitempty"`
}

// DepositRequest represents the request body for a balance top-up.
type DepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// UserResponse represents a user in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse represents the response for listing users.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Balance:   formatMoney(u.Balance),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// ToUserListResponse converts a slice of users to a UserListResponse DTO.
func ToUserListResponse(users []*entity.User) UserListResponse {
	response := UserListResponse{
		Users: make([]UserResponse, 0, len(users)),
	}
	for _, u := range users {
		response.Users = append(response.Users, ToUserResponse(u))
	}
	return response
}
