package ports

import (
	"context"

	"github.com/moviemaker/movie-api/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, cred domain.Credential) (bool, error)
	IssueToken(user *domain.User) (string, error)
	CreateUser(ctx context.Context, user *domain.User, password string) (bool, error)
	Logout(ctx context.Context, identity domain.Identity) error
}
