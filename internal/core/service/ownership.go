package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
)

// AuthorizeOwner allows a mutation only when the caller is the owner.
// Equality is strict: holding the Admin role grants nothing here.
func AuthorizeOwner(callerID, ownerID string) error {
	if callerID == "" {
		return domain.ErrUnauthenticated
	}
	if callerID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}

// resolveCaller re-reads the caller from the store using the token subject,
// so a token that outlives its account no longer authenticates anyone.
func resolveCaller(ctx context.Context, users ports.CredentialStore, callerID string) (*domain.User, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthenticated
	}
	caller, err := users.FindByID(ctx, callerID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("resolve caller: %w", err)
	}
	return caller, nil
}
