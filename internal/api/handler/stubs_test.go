package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/moviemaker/movie-api/internal/api/middleware"
	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn      func(ctx context.Context, cred domain.Credential) (bool, error)
	issueTokenFn func(user *domain.User) (string, error)
	createUserFn func(ctx context.Context, user *domain.User, password string) (bool, error)
	logoutFn     func(ctx context.Context, identity domain.Identity) error
}

func (s *stubAuthService) Login(ctx context.Context, cred domain.Credential) (bool, error) {
	return s.loginFn(ctx, cred)
}

func (s *stubAuthService) IssueToken(user *domain.User) (string, error) {
	if s.issueTokenFn == nil {
		return "token-for-" + user.ID, nil
	}
	return s.issueTokenFn(user)
}

func (s *stubAuthService) CreateUser(ctx context.Context, user *domain.User, password string) (bool, error) {
	return s.createUserFn(ctx, user, password)
}

func (s *stubAuthService) Logout(ctx context.Context, identity domain.Identity) error {
	return s.logoutFn(ctx, identity)
}

type stubUserService struct {
	users    map[string]*domain.User
	updateFn func(ctx context.Context, callerID, id string, in ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, callerID, id string) (bool, error)
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserService) Update(ctx context.Context, callerID, id string, in ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, callerID, id, in)
}

func (s *stubUserService) Delete(ctx context.Context, callerID, id string) (bool, error) {
	return s.deleteFn(ctx, callerID, id)
}

type stubMovieService struct {
	movies   []*domain.Movie
	searchFn func(ctx context.Context, q string) ([]*domain.Movie, error)
	createFn func(ctx context.Context, callerID string, in ports.MovieInput) (*domain.Movie, error)
	updateFn func(ctx context.Context, callerID, id string, in ports.MovieInput) (*domain.Movie, error)
	deleteFn func(ctx context.Context, callerID, id string) (bool, error)
}

func (s *stubMovieService) List(context.Context) ([]*domain.Movie, error) { return s.movies, nil }

func (s *stubMovieService) Get(_ context.Context, id string) (*domain.Movie, error) {
	for _, m := range s.movies {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrMovieNotFound
}

func (s *stubMovieService) Search(ctx context.Context, q string) ([]*domain.Movie, error) {
	return s.searchFn(ctx, q)
}

func (s *stubMovieService) ListByOwner(_ context.Context, userID string) ([]*domain.Movie, error) {
	var out []*domain.Movie
	for _, m := range s.movies {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *stubMovieService) Create(ctx context.Context, callerID string, in ports.MovieInput) (*domain.Movie, error) {
	return s.createFn(ctx, callerID, in)
}

func (s *stubMovieService) Update(ctx context.Context, callerID, id string, in ports.MovieInput) (*domain.Movie, error) {
	return s.updateFn(ctx, callerID, id, in)
}

func (s *stubMovieService) Delete(ctx context.Context, callerID, id string) (bool, error) {
	return s.deleteFn(ctx, callerID, id)
}

var (
	_ ports.AuthService  = (*stubAuthService)(nil)
	_ ports.UserService  = (*stubUserService)(nil)
	_ ports.MovieService = (*stubMovieService)(nil)
)

// newContext builds an echo context with the validator installed. A non-empty
// callerID simulates a request that passed the Auth middleware.
func newContext(method, target string, body io.Reader, callerID string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if callerID != "" {
		c.Set(middleware.KeyUserID, callerID)
		c.Set(middleware.KeyUsername, callerID)
		c.Set(middleware.KeyTokenID, "jti-"+callerID)
		c.Set(middleware.KeyTokenExpiresAt, time.Now().Add(10*time.Minute))
	}
	return c, rec
}
