package handler

import (
	"strings"
	"time"

	"github.com/cinelog/movie-catalog/internal/core/domain"
)

var releaseDateLayouts = []string{"2006-01-02", time.RFC3339}

func parseReleaseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range releaseDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError("releaseDate", "must be a date (YYYY-MM-DD)")
}

func toDomainMovie(req createMovieRequest) (*domain.Movie, error) {
	released, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}
	return &domain.Movie{
		MovieID:     req.MovieID,
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: released,
		Genre:       req.Genre,
		Director:    req.Director,
		Cast:        req.Cast,
		Rating:      float64(*req.Rating),
	}, nil
}

// toMoviePatch keeps nil for every absent field. A present but empty list is
// passed through so the merged record fails validation instead of being ignored.
func toMoviePatch(req updateMovieRequest) (domain.MoviePatch, error) {
	patch := domain.MoviePatch{
		MovieID:     req.MovieID,
		Title:       req.Title,
		Description: req.Description,
		Director:    req.Director,
		Rating:      req.Rating.float(),
		Genre:       req.Genre,
		Cast:        req.Cast,
	}
	if req.ReleaseDate != nil {
		released, err := parseReleaseDate(*req.ReleaseDate)
		if err != nil {
			return domain.MoviePatch{}, err
		}
		patch.ReleaseDate = &released
	}
	return patch, nil
}
