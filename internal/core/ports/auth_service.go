package ports

import (
	"context"

	"github.com/cinelog/movie-catalog/internal/core/domain"
)

// RegisterInput is the registration payload after transport decoding.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// AuthService issues session tokens for password and Google logins.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	GoogleLogin(ctx context.Context, credential string) (string, error)
}

// AccountService manages the authenticated user's own account.
type AccountService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID, name string) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, current, next string) error
	DeleteAccount(ctx context.Context, userID string) error
}

// TokenService issues and verifies bearer tokens carrying a user id.
type TokenService interface {
	Issue(userID string) (string, error)
	// Verify returns the embedded user id or domain.ErrInvalidToken.
	Verify(token string) (string, error)
}

// IdentityVerifier checks a credential with an external identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (*domain.ExternalIdentity, error)
}

// ReplayGuard remembers exchanged external credentials.
type ReplayGuard interface {
	// FirstUse records credential and reports whether it had not been seen before.
	FirstUse(ctx context.Context, credential string) (bool, error)
}
