package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
	"github.com/moviemaker/movie-api/internal/infrastructure/metrics"
	"github.com/moviemaker/movie-api/internal/pkg/password"
)

// decoyHash is checked against when the username is unknown so both rejection
// paths pay for one bcrypt comparison.
var decoyHash = sync.OnceValue(func() string {
	hash, err := password.Hash("movie-api-decoy")
	if err != nil {
		panic(err)
	}
	return hash
})

// AuthService implements login, token issuance, registration and logout.
type AuthService struct {
	users       ports.CredentialStore
	roles       *RoleManager
	tokens      ports.TokenIssuer
	revocations ports.RevocationStore
	log         zerolog.Logger
}

func NewAuthService(
	users ports.CredentialStore,
	roles *RoleManager,
	tokens ports.TokenIssuer,
	revocations ports.RevocationStore,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		roles:       roles,
		tokens:      tokens,
		revocations: revocations,
		log:         log,
	}
}

// Login reports whether cred matches a stored account. Unknown usernames and
// wrong passwords are both plain false; only store failures return an error.
func (s *AuthService) Login(ctx context.Context, cred domain.Credential) (bool, error) {
	if cred.Username == "" || cred.Password == "" {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return false, nil
	}

	user, err := s.users.FindByUsername(ctx, cred.Username)
	if errors.Is(err, domain.ErrUserNotFound) {
		_, _ = s.users.VerifyPassword(ctx, &domain.User{PasswordHash: decoyHash()}, cred.Password)
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		return false, nil
	}
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("login: %w", err)
	}

	ok, err := s.users.VerifyPassword(ctx, user, cred.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return false, fmt.Errorf("login: %w", err)
	}
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("rejected").Inc()
		s.log.Info().Str("username", cred.Username).Msg("login rejected")
		return false, nil
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return true, nil
}

// IssueToken signs a bearer token for user.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}
	metrics.TokensIssuedTotal.Inc()
	return token, nil
}

// CreateUser persists user with password and then assigns the role implied by
// its admin flag. Role assignment only runs once the insert has committed; if
// it fails the new account is removed again so no half-created identity stays
// behind. On success user is replaced with the stored record.
func (s *AuthService) CreateUser(ctx context.Context, user *domain.User, password string) (bool, error) {
	if user == nil || user.Username == "" || user.Email == "" || password == "" {
		return false, domain.ErrValidation
	}

	created, err := s.users.Create(ctx, user, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return false, err
		}
		return false, fmt.Errorf("create user: %w", err)
	}
	if created == nil || created.ID == "" {
		return false, nil
	}

	if err := s.roles.AssignRole(ctx, created, created.IsAdmin); err != nil {
		if delErr := s.users.Delete(ctx, created.ID); delErr != nil {
			s.log.Error().Err(delErr).Str("user_id", created.ID).Msg("failed to roll back user after role assignment error")
		}
		return false, fmt.Errorf("create user: %w", err)
	}

	*user = *created
	role := domain.RoleFor(created.IsAdmin)
	metrics.UsersCreatedTotal.WithLabelValues(role).Inc()
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Str("role", role).Msg("user created")
	return true, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, identity domain.Identity) error {
	if identity.TokenID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.revocations.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	metrics.TokensRevokedTotal.Inc()
	s.log.Info().Str("user_id", identity.UserID).Msg("token revoked")
	return nil
}
