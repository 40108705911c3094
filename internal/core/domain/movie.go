package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 0
	MaxRating = 10
)

// Movie is a catalog entry. ID is the store-assigned surrogate key, MovieID the
// caller-supplied business key. CreatedBy never changes after creation.
type Movie struct {
	ID          string    `json:"_id"`
	MovieID     string    `json:"movieId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"releaseDate"`
	Genre       []string  `json:"genre"`
	Director    string    `json:"director"`
	Cast        []string  `json:"cast"`
	Rating      float64   `json:"rating"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MoviePatch carries a partial update. Nil fields keep the stored value.
type MoviePatch struct {
	MovieID     *string
	Title       *string
	Description *string
	ReleaseDate *time.Time
	Genre       []string
	Director    *string
	Cast        []string
	Rating      *float64
}

// IsOwnedBy reports whether userID created the movie.
func (m *Movie) IsOwnedBy(userID string) bool {
	return userID != "" && m.CreatedBy == userID
}

// Apply merges the supplied fields of p over m.
func (m *Movie) Apply(p MoviePatch) {
	if p.MovieID != nil {
		m.MovieID = *p.MovieID
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.ReleaseDate != nil {
		m.ReleaseDate = *p.ReleaseDate
	}
	if p.Genre != nil {
		m.Genre = p.Genre
	}
	if p.Director != nil {
		m.Director = *p.Director
	}
	if p.Cast != nil {
		m.Cast = p.Cast
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
}

// Normalize trims text fields and drops blank list entries.
func (m *Movie) Normalize() {
	m.MovieID = strings.TrimSpace(m.MovieID)
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	m.Director = strings.TrimSpace(m.Director)
	m.Genre = compact(m.Genre)
	m.Cast = compact(m.Cast)
}

// Validate checks every field a stored movie must carry.
func (m *Movie) Validate() error {
	switch {
	case m.MovieID == "":
		return NewValidationError("movieId", "is required")
	case m.Title == "":
		return NewValidationError("title", "is required")
	case m.Description == "":
		return NewValidationError("description", "is required")
	case m.ReleaseDate.IsZero():
		return NewValidationError("releaseDate", "is required")
	case len(m.Genre) == 0:
		return NewValidationError("genre", "must contain at least one entry")
	case m.Director == "":
		return NewValidationError("director", "is required")
	case len(m.Cast) == 0:
		return NewValidationError("cast", "must contain at least one entry")
	case m.Rating < MinRating || m.Rating > MaxRating:
		return NewValidationError("rating", "must be between 0 and 10")
	}
	return nil
}

// IsObjectID reports whether ref has the shape of a surrogate id.
func IsObjectID(ref string) bool {
	return primitive.IsValidObjectID(ref)
}

func compact(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}
