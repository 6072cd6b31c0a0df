package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/estall/marketplace-api/internal/core/domain"
	"github.com/estall/marketplace-api/internal/core/ports"
)

// UserService resolves roles and implements the admin user operations.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// ResolveRole looks up the identity's stored role. The lookup happens on
// every call so role changes between requests are always observed. An
// unknown identity yields ErrForbidden, indistinguishable from a mismatch.
func (s *UserService) ResolveRole(ctx context.Context, email string) (domain.Role, error) {
	if email == "" {
		return "", domain.ErrForbidden
	}
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrForbidden
		}
		return "", err
	}
	return user.Role, nil
}

// HasRole reports whether the identity holds the given role. Unknown
// identities answer false.
func (s *UserService) HasRole(ctx context.Context, email string, role domain.Role) (bool, error) {
	resolved, err := s.ResolveRole(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return false, nil
		}
		return false, err
	}
	return resolved == role, nil
}

func (s *UserService) ListByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	return s.repo.ListByRole(ctx, role)
}

// Verify marks a user verified. The flag is informational; nothing in the
// purchase workflow gates on it.
func (s *UserService) Verify(ctx context.Context, id string) error {
	if err := s.repo.SetVerified(ctx, id, true); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user verified")
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
