package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinelog/movie-catalog/internal/core/domain"
	"github.com/cinelog/movie-catalog/internal/core/ports"
)

// AccountService implements self-service account management.
type AccountService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewAccountService(users ports.UserRepository, log zerolog.Logger) *AccountService {
	return &AccountService{users: users, log: log}
}

func (s *AccountService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return user, nil
}

// ChangePassword re-hashes the password. When the account already has one,
// current must match it; Google-only accounts may set a first password.
// Tokens issued before the change stay valid until they expire.
func (s *AccountService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.HasPassword() && !user.CheckPassword(current) {
		return domain.ErrInvalidCredentials
	}
	if err := user.SetPassword(next); err != nil {
		return err
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *AccountService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("account deleted")
	return nil
}
