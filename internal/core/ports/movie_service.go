package ports

import (
	"context"
	"time"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

// MovieInput is the DTO passed from the transport layer to MovieService.
type MovieInput struct {
	Title         string
	Description   string
	Author        string
	Genre         domain.Genre
	DateOfRelease time.Time
}

// MovieService defines use-case operations for movies. Mutations take the
// caller id from the validated token and enforce ownership.
type MovieService interface {
	List(ctx context.Context) ([]*domain.Movie, error)
	Get(ctx context.Context, id string) (*domain.Movie, error)
	Search(ctx context.Context, query string) ([]*domain.Movie, error)
	ListByOwner(ctx context.Context, userID string) ([]*domain.Movie, error)
	Create(ctx context.Context, callerID string, in MovieInput) (*domain.Movie, error)
	Update(ctx context.Context, callerID, id string, in MovieInput) (*domain.Movie, error)
	Delete(ctx context.Context, callerID, id string) (bool, error)
}
