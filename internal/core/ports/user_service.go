package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// RoleResolver answers "what role does this identity hold right now".
// Implementations must hit the user store on every call, with no
// session-level caching, so a role change made by an admin between two
// requests of the same caller is always observed.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (domain.Role, error)
}

// UserService exposes identity lookups and the admin user operations.
type UserService interface {
	RoleResolver

	// HasRole reports whether the identity holds the given role. An unknown
	// email yields false, never a distinct not-found signal (fail closed).
	HasRole(ctx context.Context, email string, role domain.Role) (bool, error)
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)
	Verify(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
