package ports

import (
	"context"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

// MovieRepository defines persistence operations for movies.
type MovieRepository interface {
	List(ctx context.Context) ([]*domain.Movie, error)
	// Search matches query case-insensitively against title, description, author and genre.
	Search(ctx context.Context, query string) ([]*domain.Movie, error)
	ListByOwner(ctx context.Context, userID string) ([]*domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	Create(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	Update(ctx context.Context, m *domain.Movie) (*domain.Movie, error)
	Delete(ctx context.Context, id string) error
	DeleteByOwner(ctx context.Context, userID string) (int64, error)
}
