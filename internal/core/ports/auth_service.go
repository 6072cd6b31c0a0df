package ports

import (
	"context"

	"github.com/estall/marketplace-api/internal/core/domain"
)

// RegisterInput carries a registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// RegisterResult is returned by Register. AlreadyRegistered is true when the
// email was taken; in that case User is the stored record and no new document
// was created.
type RegisterResult struct {
	User              *domain.User
	AlreadyRegistered bool
}

// AuthService issues credentials and registers identities.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
	// Login verifies the password and returns a signed bearer token plus the
	// stored user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
