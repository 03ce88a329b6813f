package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

// UserLookup loads the current state of an account.
type UserLookup interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

// RequireRole lets the request through only when the caller currently holds
// one of the allowed roles. Roles are read from the store rather than the
// token, so revoking a role takes effect immediately.
func RequireRole(users UserLookup, allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}

			user, err := users.Get(c.Request().Context(), identity.UserID)
			if errors.Is(err, domain.ErrUserNotFound) {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error())
			}
			if err != nil {
				return fmt.Errorf("rbac: %w", err)
			}

			for _, role := range allowedRoles {
				if user.HasRole(role) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, domain.ErrForbidden.Error())
		}
	}
}
