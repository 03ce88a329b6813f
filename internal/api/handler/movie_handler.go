package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemaker/movie-api/internal/core/ports"
)

// MovieHandler handles HTTP requests for movie operations.
type MovieHandler struct {
	movies ports.MovieService
}

func NewMovieHandler(movies ports.MovieService) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// List handles GET /movies.
//
// @Summary      List movies
// @Tags         movies
// @Produce      json
// @Success      200  {array}  movieResponse
// @Router       /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	movies, err := h.movies.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponses(movies))
}

// Search handles GET /movies/search?q=.
//
// @Summary      Search movies
// @Description  Case-insensitive substring match on title, description, author and genre.
// @Tags         movies
// @Produce      json
// @Param        q    query    string  false  "Search text"
// @Success      200  {array}  movieResponse
// @Router       /movies/search [get]
func (h *MovieHandler) Search(c echo.Context) error {
	movies, err := h.movies.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponses(movies))
}

// Get handles GET /movies/:id.
//
// @Summary      Get a movie
// @Tags         movies
// @Produce      json
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {object}  movieResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [get]
func (h *MovieHandler) Get(c echo.Context) error {
	movie, err := h.movies.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Create handles POST /movies. The caller becomes the owner.
//
// @Summary      Create a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      201   {object}  movieResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	in, err := h.bindMovie(c)
	if err != nil {
		return err
	}

	movie, err := h.movies.Create(c.Request().Context(), identity.UserID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toMovieResponse(movie))
}

// Update handles PUT /movies/:id.
//
// @Summary      Update a movie
// @Tags         movies
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Movie ID"
// @Param        body  body      movieRequest  true  "Movie details"
// @Success      200   {object}  movieResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}
	in, err := h.bindMovie(c)
	if err != nil {
		return err
	}

	movie, err := h.movies.Update(c.Request().Context(), identity.UserID, c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMovieResponse(movie))
}

// Delete handles DELETE /movies/:id.
//
// @Summary      Delete a movie
// @Tags         movies
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Movie ID"
// @Success      200  {boolean} bool
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	identity, err := callerIdentity(c)
	if err != nil {
		return err
	}

	ok, err := h.movies.Delete(c.Request().Context(), identity.UserID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ok)
}

func (h *MovieHandler) bindMovie(c echo.Context) (ports.MovieInput, error) {
	var req movieRequest
	if err := bindAndValidate(c, &req); err != nil {
		return ports.MovieInput{}, err
	}
	return toMovieInput(req)
}
