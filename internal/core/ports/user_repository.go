package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// UserRepository defines persistence for registered identities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	// SetVerified flips the informational verified flag (admin action).
	SetVerified(ctx context.Context, id string, verified bool) error
	Delete(ctx context.Context, id string) error
}
