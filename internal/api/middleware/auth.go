package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	KeyUserID         = "user_id"
	KeyUsername       = "username"
	KeyTokenID        = "token_id"
	KeyTokenExpiresAt = "token_expires_at"
)

// Auth validates the bearer token, rejects revoked ones and injects the
// caller identity into the context. A failing revocation lookup is an error,
// not a pass.
func Auth(tokens ports.TokenIssuer, revocations ports.RevocationStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			identity, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}

			revoked, err := revocations.IsRevoked(c.Request().Context(), identity.TokenID)
			if err != nil {
				return fmt.Errorf("auth: %w", err)
			}
			if revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrTokenRevoked.Error())
			}

			c.Set(KeyUserID, identity.UserID)
			c.Set(KeyUsername, identity.Username)
			c.Set(KeyTokenID, identity.TokenID)
			c.Set(KeyTokenExpiresAt, identity.ExpiresAt)

			return next(c)
		}
	}
}

// IdentityFrom returns the identity injected by Auth. ok is false when the
// request did not pass through Auth.
func IdentityFrom(c echo.Context) (id domain.Identity, ok bool) {
	id.UserID, _ = c.Get(KeyUserID).(string)
	id.Username, _ = c.Get(KeyUsername).(string)
	id.TokenID, _ = c.Get(KeyTokenID).(string)
	id.ExpiresAt, _ = c.Get(KeyTokenExpiresAt).(time.Time)
	return id, id.Authenticated()
}
