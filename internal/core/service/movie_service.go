package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
	"github.com/moviemaker/movie-api/internal/infrastructure/metrics"
)

type MovieService struct {
	movies ports.MovieRepository
	users  ports.CredentialStore
	log    zerolog.Logger
}

func NewMovieService(movies ports.MovieRepository, users ports.CredentialStore, log zerolog.Logger) *MovieService {
	return &MovieService{movies: movies, users: users, log: log}
}

func (s *MovieService) List(ctx context.Context) ([]*domain.Movie, error) {
	movies, err := s.movies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return movies, nil
}

func (s *MovieService) Get(ctx context.Context, id string) (*domain.Movie, error) {
	return s.movies.FindByID(ctx, id)
}

// Search returns every movie when query is blank.
func (s *MovieService) Search(ctx context.Context, query string) ([]*domain.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.List(ctx)
	}
	movies, err := s.movies.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	return movies, nil
}

func (s *MovieService) ListByOwner(ctx context.Context, userID string) ([]*domain.Movie, error) {
	movies, err := s.movies.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list movies by owner: %w", err)
	}
	return movies, nil
}

// Create stores a movie owned by the caller.
func (s *MovieService) Create(ctx context.Context, callerID string, in ports.MovieInput) (*domain.Movie, error) {
	if err := validateMovie(in); err != nil {
		return nil, err
	}

	caller, err := resolveCaller(ctx, s.users, callerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	movie := &domain.Movie{
		Title:         in.Title,
		Description:   in.Description,
		Author:        in.Author,
		Genre:         in.Genre,
		DateOfRelease: in.DateOfRelease,
		UserID:        caller.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.movies.Create(ctx, movie)
	if err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	metrics.MovieMutationsTotal.WithLabelValues("create").Inc()
	s.log.Info().Str("movie_id", created.ID).Str("user_id", caller.ID).Msg("movie created")
	return created, nil
}

// Update overwrites the editable fields of a movie the caller owns.
func (s *MovieService) Update(ctx context.Context, callerID, id string, in ports.MovieInput) (*domain.Movie, error) {
	if err := validateMovie(in); err != nil {
		return nil, err
	}

	movie, err := s.authorizeOwner(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	movie.Title = in.Title
	movie.Description = in.Description
	movie.Author = in.Author
	movie.Genre = in.Genre
	movie.DateOfRelease = in.DateOfRelease
	movie.UpdatedAt = time.Now().UTC()

	updated, err := s.movies.Update(ctx, movie)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	metrics.MovieMutationsTotal.WithLabelValues("update").Inc()
	s.log.Info().Str("movie_id", id).Str("user_id", callerID).Msg("movie updated")
	return updated, nil
}

// Delete removes a movie the caller owns.
func (s *MovieService) Delete(ctx context.Context, callerID, id string) (bool, error) {
	if _, err := s.authorizeOwner(ctx, callerID, id); err != nil {
		return false, err
	}

	if err := s.movies.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return false, err
		}
		return false, fmt.Errorf("delete movie: %w", err)
	}

	metrics.MovieMutationsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("movie_id", id).Str("user_id", callerID).Msg("movie deleted")
	return true, nil
}

// authorizeOwner loads the movie first so a missing id is reported as
// not-found before any identity comparison happens.
func (s *MovieService) authorizeOwner(ctx context.Context, callerID, id string) (*domain.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrMovieNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}

	caller, err := resolveCaller(ctx, s.users, callerID)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeOwner(caller.ID, movie.UserID); err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			metrics.OwnershipDenialsTotal.WithLabelValues("movie").Inc()
			s.log.Warn().Str("movie_id", id).Str("user_id", caller.ID).Msg("ownership check failed")
		}
		return nil, err
	}
	return movie, nil
}

func validateMovie(in ports.MovieInput) error {
	switch {
	case in.Title == "", in.Description == "", in.Author == "":
		return domain.ErrValidation
	case !in.Genre.Valid():
		return fmt.Errorf("%w: unknown genre %q", domain.ErrValidation, in.Genre)
	case in.DateOfRelease.IsZero():
		return domain.ErrValidation
	}
	return nil
}
