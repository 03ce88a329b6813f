package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemaker/movie-api/internal/api/middleware"
	"github.com/moviemaker/movie-api/internal/core/domain"
)

// callerIdentity returns the identity injected by the Auth middleware, or
// domain.ErrUnauthenticated when there is none.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}

// bindAndValidate decodes the body into req and runs the registered validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
