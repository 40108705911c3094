package ports

import (
	"context"

	"github.com/cinelog/movie-catalog/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
// Lookups return domain.ErrUserNotFound when nothing matches and Create/Update
// return domain.ErrUserExists on a uniqueness violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
