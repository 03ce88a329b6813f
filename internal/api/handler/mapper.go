package handler

import (
	"fmt"
	"time"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
)

// --- Request → Service input ---

func toMovieInput(req movieRequest) (ports.MovieInput, error) {
	released, err := time.Parse(domain.DateLayout, req.DateOfRelease)
	if err != nil {
		return ports.MovieInput{}, fmt.Errorf("%w: date_of_release must be YYYY-MM-DD", domain.ErrValidation)
	}
	return ports.MovieInput{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		Genre:         domain.Genre(req.Genre),
		DateOfRelease: released,
	}, nil
}

func toUpdateUserInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		IsAdmin:  u.IsAdmin,
	}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

func toMovieResponse(m *domain.Movie) movieResponse {
	return movieResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		Author:        m.Author,
		Genre:         string(m.Genre),
		DateOfRelease: m.DateOfRelease.Format(domain.DateLayout),
		UserID:        m.UserID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toMovieResponses(movies []*domain.Movie) []movieResponse {
	out := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, toMovieResponse(m))
	}
	return out
}
