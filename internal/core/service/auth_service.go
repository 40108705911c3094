package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/cinelog/movie-catalog/internal/core/domain"
	"github.com/cinelog/movie-catalog/internal/core/ports"
)

var validate = validator.New()

// AuthService implements registration, password login and Google login.
type AuthService struct {
	users    ports.UserRepository
	tokens   ports.TokenService
	identity ports.IdentityVerifier
	replay   ports.ReplayGuard
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. replay may be nil, in which case
// Google credentials are not checked for reuse.
func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenService,
	identity ports.IdentityVerifier,
	replay ports.ReplayGuard,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, tokens: tokens, identity: identity, replay: replay, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (string, error) {
	email := domain.NormalizeEmail(in.Email)
	if err := validate.Var(email, "required,email"); err != nil {
		return "", domain.NewValidationError("email", "must be a valid email")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", domain.NewValidationError("name", "is required")
	}
	if len(in.Password) < domain.MinPasswordLength {
		return "", domain.NewValidationError("password", "must be at least 6 characters")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return "", domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{Email: email, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := user.SetPassword(in.Password); err != nil {
		return "", err
	}
	if err := user.Validate(); err != nil {
		return "", err
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return "", err
		}
		return "", fmt.Errorf("register: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return s.tokens.Issue(created.ID)
}

// Login returns domain.ErrInvalidCredentials for every authentication
// failure so callers cannot tell unknown emails from wrong passwords.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}

	if !user.CheckPassword(password) {
		return "", domain.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// GoogleLogin exchanges a Google ID token for a session token, creating or
// linking the account on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, credential string) (string, error) {
	if strings.TrimSpace(credential) == "" {
		return "", domain.NewValidationError("credential", "is required")
	}

	ident, err := s.identity.Verify(ctx, credential)
	if err != nil {
		s.log.Warn().Err(err).Msg("google credential rejected")
		return "", domain.ErrExternalAuth
	}

	if s.replay != nil {
		first, err := s.replay.FirstUse(ctx, credential)
		if err != nil {
			s.log.Warn().Err(err).Msg("replay check failed, continuing")
		} else if !first {
			s.log.Warn().Str("google_id", ident.Subject).Msg("google credential replayed")
			return "", domain.ErrExternalAuth
		}
	}

	user, err := s.findOrCreateGoogleUser(ctx, ident)
	if err != nil {
		return "", fmt.Errorf("google login: %w", err)
	}
	return s.tokens.Issue(user.ID)
}

func (s *AuthService) findOrCreateGoogleUser(ctx context.Context, ident *domain.ExternalIdentity) (*domain.User, error) {
	user, err := s.users.FindByGoogleID(ctx, ident.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	email := domain.NormalizeEmail(ident.Email)
	user, err = s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.GoogleID != "" && user.GoogleID != ident.Subject {
			s.log.Warn().Str("user_id", user.ID).Msg("email already linked to another google account")
			return nil, domain.ErrExternalAuth
		}
		user.GoogleID = ident.Subject
		if user.Name == "" {
			user.Name = ident.Name
		}
		user.UpdatedAt = time.Now().UTC()
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
		s.log.Info().Str("user_id", user.ID).Msg("google account linked")
		return user, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	user = &domain.User{
		Email:     email,
		Name:      ident.Name,
		GoogleID:  ident.Subject,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		// A concurrent login created the account between lookup and insert.
		if existing, lookupErr := s.users.FindByGoogleID(ctx, ident.Subject); lookupErr == nil {
			return existing, nil
		}
		return nil, domain.ErrExternalAuth
	}
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Msg("user registered via google")
	return created, nil
}
