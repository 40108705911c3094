package ports

import (
	"context"

	"github.com/cinelog/movie-catalog/internal/core/domain"
)

// MovieFilter narrows List. The zero value lists every movie.
type MovieFilter struct {
	CreatedBy string
}

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	// FindByID looks up by surrogate id. The id must already be a valid ObjectID hex.
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	FindByMovieID(ctx context.Context, movieID string) (*domain.Movie, error)
	List(ctx context.Context, filter MovieFilter) ([]*domain.Movie, error)
	// Update replaces the mutable fields of the movie identified by m.ID.
	Update(ctx context.Context, m *domain.Movie) error
	Delete(ctx context.Context, id string) error
}
