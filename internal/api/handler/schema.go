package handler

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Account ---

type updateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// --- Movies ---

// ReleaseDate accepts YYYY-MM-DD or RFC 3339.
type createMovieRequest struct {
	MovieID     string       `json:"movieId"     validate:"required"`
	Title       string       `json:"title"       validate:"required"`
	Description string       `json:"description" validate:"required"`
	ReleaseDate string       `json:"releaseDate" validate:"required"`
	Genre       []string     `json:"genre"       validate:"required,min=1"`
	Director    string       `json:"director"    validate:"required"`
	Cast        []string     `json:"cast"        validate:"required,min=1"`
	Rating      *ratingValue `json:"rating"      validate:"required,gte=0,lte=10"`
}

// updateMovieRequest carries a partial update; absent fields keep their value.
type updateMovieRequest struct {
	MovieID     *string      `json:"movieId"`
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	ReleaseDate *string      `json:"releaseDate"`
	Genre       []string     `json:"genre"`
	Director    *string      `json:"director"`
	Cast        []string     `json:"cast"`
	Rating      *ratingValue `json:"rating" validate:"omitempty,gte=0,lte=10"`
}

// ratingValue accepts a JSON number or a numeric string such as "7.5".
type ratingValue float64

func (r *ratingValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		*r = ratingValue(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(bytes.TrimSpace(data), &f); err != nil {
		return err
	}
	*r = ratingValue(f)
	return nil
}

func (r *ratingValue) float() *float64 {
	if r == nil {
		return nil
	}
	f := float64(*r)
	return &f
}
