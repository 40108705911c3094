package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cinelog/movie-catalog/internal/core/domain"
	"github.com/cinelog/movie-catalog/internal/core/ports"
)

type MovieService struct {
	repo   ports.MovieRepository
	logger zerolog.Logger
}

func NewMovieService(repo ports.MovieRepository, logger zerolog.Logger) *MovieService {
	return &MovieService{repo: repo, logger: logger}
}

// List returns the catalog. An empty filter lists every movie.
func (s *MovieService) List(ctx context.Context, filter ports.MovieFilter) ([]*domain.Movie, error) {
	movies, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

// Create validates m and stores it owned by ownerID.
func (s *MovieService) Create(ctx context.Context, m *domain.Movie, ownerID string) (*domain.Movie, error) {
	if ownerID == "" {
		return nil, domain.ErrInvalidToken
	}

	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	m.ID = ""
	m.CreatedBy = ownerID
	m.CreatedAt = now
	m.UpdatedAt = now

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		if errors.Is(err, domain.ErrMovieExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Msg("failed to create movie")
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.logger.Info().Str("movie_id", created.MovieID).Str("created_by", ownerID).Msg("movie created")
	return created, nil
}

func (s *MovieService) Get(ctx context.Context, ref string) (*domain.Movie, error) {
	return s.resolve(ctx, ref)
}

// Update merges patch over the stored movie. Only the owner may update.
func (s *MovieService) Update(ctx context.Context, ref string, patch domain.MoviePatch, requesterID string) (*domain.Movie, error) {
	m, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !m.IsOwnedBy(requesterID) {
		return nil, domain.ErrForbidden
	}

	m.Apply(patch)
	m.Normalize()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, domain.ErrMovieExists) || errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.logger.Info().Str("movie_id", m.MovieID).Str("user_id", requesterID).Msg("movie updated")
	return m, nil
}

// Delete removes the movie. Only the owner may delete.
func (s *MovieService) Delete(ctx context.Context, ref, requesterID string) error {
	m, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	if !m.IsOwnedBy(requesterID) {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, m.ID); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return err
		}
		return fmt.Errorf("delete movie: %w", err)
	}

	s.logger.Info().Str("movie_id", m.MovieID).Str("user_id", requesterID).Msg("movie deleted")
	return nil
}

// resolve looks ref up by surrogate id when it has that shape, then falls
// back to the business movieId.
func (s *MovieService) resolve(ctx context.Context, ref string) (*domain.Movie, error) {
	if ref == "" {
		return nil, domain.ErrMovieNotFound
	}

	if domain.IsObjectID(ref) {
		m, err := s.repo.FindByID(ctx, ref)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, domain.ErrMovieNotFound) {
			return nil, fmt.Errorf("find movie: %w", err)
		}
	}

	m, err := s.repo.FindByMovieID(ctx, ref)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}
	return m, nil
}
