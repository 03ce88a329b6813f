package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/service"
)

type stubRevocations struct {
	revoked map[string]bool
	err     error
}

func (s *stubRevocations) Revoke(context.Context, string, time.Time) error { return s.err }

func (s *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.revoked[tokenID], nil
}

func newIssuer(t *testing.T) *service.TokenIssuer {
	t.Helper()
	iss, err := service.NewTokenIssuer(service.TokenConfig{
		Key:      []byte(strings.Repeat("k", 64)),
		Issuer:   "movies-api",
		Audience: "movies-clients",
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	return iss
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := mw(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotReach(t *testing.T) echo.HandlerFunc {
	return func(echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	iss := newIssuer(t)
	token, err := iss.Issue(&domain.User{ID: "user-1", Username: "alice"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	called := false
	rec := runAuth(t, Auth(iss, &stubRevocations{}), "Bearer "+token, func(c echo.Context) error {
		called = true
		id, ok := IdentityFrom(c)
		if !ok {
			t.Fatalf("identity not set")
		}
		if id.UserID != "user-1" || id.Username != "alice" || id.TokenID == "" || id.ExpiresAt.IsZero() {
			t.Fatalf("unexpected identity: %+v", id)
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	iss := newIssuer(t)
	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"empty token":    "Bearer ",
		"garbage token":  "Bearer not.a.jwt",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := runAuth(t, Auth(iss, &stubRevocations{}), header, mustNotReach(t))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	iss := newIssuer(t)
	token, _ := iss.Issue(&domain.User{ID: "user-1", Username: "alice"})
	id, _ := iss.Parse(token)

	rec := runAuth(t, Auth(iss, &stubRevocations{revoked: map[string]bool{id.TokenID: true}}), "Bearer "+token, mustNotReach(t))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RevocationLookupFailsClosed(t *testing.T) {
	iss := newIssuer(t)
	token, _ := iss.Issue(&domain.User{ID: "user-1", Username: "alice"})

	rec := runAuth(t, Auth(iss, &stubRevocations{err: errors.New("redis down")}), "Bearer "+token, mustNotReach(t))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestIdentityFrom_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if _, ok := IdentityFrom(c); ok {
		t.Fatalf("expected no identity")
	}
}
