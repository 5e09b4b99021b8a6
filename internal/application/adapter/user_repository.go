// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/receipt-split/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByIDs retrieves the users with the given IDs. Missing IDs are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.User, error)

	// List retrieves all users ordered by name.
	List(ctx context.Context) ([]*entity.User, error)

	// Update saves the user's mutable fields, including the balance.
	Update(ctx context.Context, user *entity.User) error
}
