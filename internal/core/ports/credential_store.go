package ports

import (
	"context"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

// CredentialStore persists user identities and their role memberships.
// Implementations hash passwords themselves; callers only ever pass plaintext in.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)

	// VerifyPassword compares password with the stored hash of user.
	VerifyPassword(ctx context.Context, user *domain.User, password string) (bool, error)

	// Create hashes password and inserts user, returning the stored record.
	Create(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	// Update writes username and email. A non-empty password replaces the hash.
	Update(ctx context.Context, user *domain.User, password string) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	AddToRole(ctx context.Context, userID, role string) error
}

// RoleStore owns the set of known roles.
type RoleStore interface {
	// EnsureRole creates the role when absent. It must be safe to call concurrently.
	EnsureRole(ctx context.Context, name string) error
}
