package ports

import (
	"context"

	"github.com/cinelog/movie-catalog/internal/core/domain"
)

// MovieService defines catalog use cases. ref is either the surrogate id or
// the business movieId.
type MovieService interface {
	List(ctx context.Context, filter MovieFilter) ([]*domain.Movie, error)
	Create(ctx context.Context, m *domain.Movie, ownerID string) (*domain.Movie, error)
	Get(ctx context.Context, ref string) (*domain.Movie, error)
	Update(ctx context.Context, ref string, patch domain.MoviePatch, requesterID string) (*domain.Movie, error)
	Delete(ctx context.Context, ref, requesterID string) error
}
