package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cinelog/movie-catalog/internal/api/metrics"
	"github.com/cinelog/movie-catalog/internal/core/domain"
	"github.com/cinelog/movie-catalog/internal/core/ports"
)

// MovieHandler handles HTTP requests for catalog operations.
type MovieHandler struct {
	service ports.MovieService
}

func NewMovieHandler(service ports.MovieService) *MovieHandler {
	return &MovieHandler{service: service}
}

// List handles GET /api/movies.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Param        createdBy  query     string  false  "Only movies created by this user id"
// @Success      200        {array}   domain.Movie
// @Failure      500        {object}  messageResponse
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.service.List(c.Request().Context(), ports.MovieFilter{
		CreatedBy: c.QueryParam("createdBy"),
	})
	if err != nil {
		return err
	}
	if movies == nil {
		movies = []*domain.Movie{}
	}
	return c.JSON(http.StatusOK, movies)
}

// Create handles POST /api/movies.
//
// @Summary      Add a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMovieRequest  true  "Movie details"
// @Success      201   {object}  domain.Movie
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return rejected("create", err)
	}

	movie, err := toDomainMovie(req)
	if err != nil {
		return rejected("create", err)
	}

	created, err := h.service.Create(c.Request().Context(), movie, userID)
	if err != nil {
		return rejected("create", err)
	}

	metrics.MoviesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/movies/:id. id is either the _id or the movieId.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "_id or movieId"
// @Success      200  {object}  domain.Movie
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, movie)
}

// Update handles PUT /api/movies/:id. Only the creator may update.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "_id or movieId"
// @Param        body  body      updateMovieRequest  true  "Fields to change"
// @Success      200   {object}  domain.Movie
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Router       /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return rejected("update", err)
	}

	patch, err := toMoviePatch(req)
	if err != nil {
		return rejected("update", err)
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), patch, userID)
	if err != nil {
		return rejected("update", err)
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/movies/:id. Only the creator may delete.
//
// @Summary      Delete a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "_id or movieId"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), c.Param("id"), userID); err != nil {
		return rejected("delete", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Movie deleted"})
}

// rejected records the rejection reason and hands err back to the error handler.
func rejected(operation string, err error) error {
	reason := "error"
	switch {
	case errors.Is(err, domain.ErrValidation):
		reason = "validation"
	case errors.Is(err, domain.ErrMovieExists):
		reason = "conflict"
	case errors.Is(err, domain.ErrForbidden):
		reason = "forbidden"
	case errors.Is(err, domain.ErrMovieNotFound):
		reason = "not_found"
	}
	metrics.MovieWritesRejectedTotal.WithLabelValues(operation, reason).Inc()
	return err
}
