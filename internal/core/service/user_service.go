package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
	"github.com/moviemaker/movie-api/internal/infrastructure/metrics"
)

type UserService struct {
	users  ports.CredentialStore
	movies ports.MovieRepository
	log    zerolog.Logger
}

func NewUserService(users ports.CredentialStore, movies ports.MovieRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, movies: movies, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// Update changes the caller's own profile. The target must exist before the
// ownership check runs, so unknown ids surface as not-found.
func (s *UserService) Update(ctx context.Context, callerID, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" {
		return nil, domain.ErrValidation
	}

	target, err := s.authorizeSelf(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	target.Username = in.Username
	target.Email = in.Email

	updated, err := s.users.Update(ctx, target, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) || errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Str("user_id", updated.ID).Bool("password_changed", in.Password != "").Msg("user updated")
	return updated, nil
}

// Delete removes the caller's own account, then the movies it owns. A failed
// cascade is logged only; the orphaned movies have no owner left to mutate them.
func (s *UserService) Delete(ctx context.Context, callerID, id string) (bool, error) {
	target, err := s.authorizeSelf(ctx, callerID, id)
	if err != nil {
		return false, err
	}

	if err := s.users.Delete(ctx, target.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return false, err
		}
		return false, fmt.Errorf("delete user: %w", err)
	}

	removed, err := s.movies.DeleteByOwner(ctx, target.ID)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", target.ID).Msg("failed to remove movies of deleted user")
		return true, nil
	}

	s.log.Info().Str("user_id", target.ID).Int64("movies_removed", removed).Msg("user deleted")
	return true, nil
}

func (s *UserService) authorizeSelf(ctx context.Context, callerID, id string) (*domain.User, error) {
	target, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	caller, err := resolveCaller(ctx, s.users, callerID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(caller.ID, target.ID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.OwnershipDenialsTotal.WithLabelValues("user").Inc()
		}
		return nil, err
	}
	return target, nil
}
