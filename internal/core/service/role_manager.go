package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
)

// RoleManager seeds the fixed role set and assigns roles to users.
type RoleManager struct {
	roles  ports.RoleStore
	users  ports.CredentialStore
	log    zerolog.Logger
	seeded atomic.Bool
}

func NewRoleManager(roles ports.RoleStore, users ports.CredentialStore, log zerolog.Logger) *RoleManager {
	return &RoleManager{roles: roles, users: users, log: log}
}

// EnsureRolesExist creates "User" and "Admin" when absent. Concurrent first
// calls race on the store, whose unique index keeps a single record per role.
func (m *RoleManager) EnsureRolesExist(ctx context.Context) error {
	if m.seeded.Load() {
		return nil
	}
	for _, role := range domain.Roles {
		if err := m.roles.EnsureRole(ctx, role); err != nil {
			return fmt.Errorf("ensure role %q: %w", role, err)
		}
	}
	m.seeded.Store(true)
	return nil
}

// AssignRole adds exactly one role to user: Admin when isAdmin, User otherwise.
func (m *RoleManager) AssignRole(ctx context.Context, user *domain.User, isAdmin bool) error {
	if err := m.EnsureRolesExist(ctx); err != nil {
		return err
	}

	role := domain.RoleFor(isAdmin)
	if err := m.users.AddToRole(ctx, user.ID, role); err != nil {
		return fmt.Errorf("assign role %q: %w", role, err)
	}
	if !user.HasRole(role) {
		user.Roles = append(user.Roles, role)
	}

	m.log.Debug().Str("user_id", user.ID).Str("role", role).Msg("role assigned")
	return nil
}
