package ports

import (
	"context"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

// UpdateUserInput carries a self-service profile change. An empty Password
// leaves the current one in place.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
}

// UserService defines account operations beyond authentication.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, callerID, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, callerID, id string) (bool, error)
}
