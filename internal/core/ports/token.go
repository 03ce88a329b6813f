package ports

import (
	"context"
	"time"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

// TokenIssuer signs and validates bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	Parse(token string) (domain.Identity, error)
}

// RevocationStore remembers logged-out token ids until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
