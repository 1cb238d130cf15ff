package interfaces

import (
	"context"

	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/model"
	"github.com/AI-INNOVATION-SPRINT-2026/AI-IS-18-AEIP-Project-Management/pkg/domain/types"
)

// UserRepository defines the interface for User persistence
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *model.User) (*model.User, error)

	// Get retrieves a user by ID
	Get(ctx context.Context, id types.UserID) (*model.User, error)

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*model.User, error)

	// Update replaces a stored user
	Update(ctx context.Context, user *model.User) (*model.User, error)

	// Delete removes a user by ID
	Delete(ctx context.Context, id types.UserID) error
}
