package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/moviemaker/movie-api/internal/core/domain"
	"github.com/moviemaker/movie-api/internal/core/ports"
	"github.com/moviemaker/movie-api/internal/pkg/password"
)

var discardLogger = zerolog.Nop()

func init() {
	password.Cost = bcrypt.MinCost
}

// ---------------------------------------------------------------------------
// Credential store
// ---------------------------------------------------------------------------

type stubCredentialStore struct {
	mu       sync.Mutex
	byID     map[string]*domain.User
	nextID   int
	findErr  error // returned by every lookup when set
	roleErr  error // returned by AddToRole when set
	delErr   error // returned by Delete when set
	verifies int
	deleted  []string
	addRoles []string
}

func newStubCredentialStore() *stubCredentialStore {
	return &stubCredentialStore{byID: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = slices.Clone(u.Roles)
	return &clone
}

func (s *stubCredentialStore) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	for _, u := range s.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubCredentialStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findErr != nil {
		return nil, s.findErr
	}
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *stubCredentialStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (s *stubCredentialStore) VerifyPassword(_ context.Context, user *domain.User, plain string) (bool, error) {
	s.mu.Lock()
	s.verifies++
	s.mu.Unlock()
	return password.Verify(user.PasswordHash, plain)
}

func (s *stubCredentialStore) Create(_ context.Context, user *domain.User, plain string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return nil, err
	}
	s.nextID++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", s.nextID)
	stored.PasswordHash = hash
	stored.Roles = nil
	s.byID[stored.ID] = stored
	return cloneUser(stored), nil
}

func (s *stubCredentialStore) Update(_ context.Context, user *domain.User, plain string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.byID[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	for _, u := range s.byID {
		if u.ID != user.ID && u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	stored.Username = user.Username
	stored.Email = user.Email
	if plain != "" {
		hash, err := password.Hash(plain)
		if err != nil {
			return nil, err
		}
		stored.PasswordHash = hash
	}
	return cloneUser(stored), nil
}

func (s *stubCredentialStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delErr != nil {
		return s.delErr
	}
	if _, ok := s.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubCredentialStore) AddToRole(_ context.Context, userID, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.roleErr != nil {
		return s.roleErr
	}
	u, ok := s.byID[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if !slices.Contains(u.Roles, role) {
		u.Roles = append(u.Roles, role)
	}
	s.addRoles = append(s.addRoles, role)
	return nil
}

// seed inserts a user directly, bypassing role assignment.
func (s *stubCredentialStore) seed(username, plain string, isAdmin bool) *domain.User {
	u, err := s.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
		IsAdmin:  isAdmin,
	}, plain)
	if err != nil {
		panic(err)
	}
	return u
}

// ---------------------------------------------------------------------------
// Role store
// ---------------------------------------------------------------------------

type stubRoleStore struct {
	mu      sync.Mutex
	roles   map[string]int // name -> records
	calls   int
	failErr error
}

func newStubRoleStore() *stubRoleStore {
	return &stubRoleStore{roles: make(map[string]int)}
}

// EnsureRole behaves like an upsert on a unique index.
func (s *stubRoleStore) EnsureRole(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failErr != nil {
		return s.failErr
	}
	if _, ok := s.roles[name]; !ok {
		s.roles[name] = 1
	}
	return nil
}

// ---------------------------------------------------------------------------
// Movie repository
// ---------------------------------------------------------------------------

type stubMovieRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Movie
	nextID    int
	createErr error
	ownerErr  error // returned by DeleteByOwner when set
}

func newStubMovieRepo() *stubMovieRepo {
	return &stubMovieRepo{byID: make(map[string]*domain.Movie)}
}

func (r *stubMovieRepo) List(_ context.Context) ([]*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Movie, 0, len(r.byID))
	for _, m := range r.byID {
		clone := *m
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMovieRepo) Search(_ context.Context, query string) ([]*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(query)
	var out []*domain.Movie
	for _, m := range r.byID {
		fields := []string{m.Title, m.Description, m.Author, string(m.Genre)}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), q) {
				clone := *m
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

func (r *stubMovieRepo) ListByOwner(_ context.Context, userID string) ([]*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Movie
	for _, m := range r.byID {
		if m.UserID == userID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMovieRepo) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMovieRepo) Create(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *m
	clone.ID = fmt.Sprintf("movie-%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMovieRepo) Update(_ context.Context, m *domain.Movie) (*domain.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return nil, domain.ErrMovieNotFound
	}
	clone := *m
	r.byID[m.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubMovieRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrMovieNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubMovieRepo) DeleteByOwner(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.ownerErr != nil {
		return 0, r.ownerErr
	}
	var n int64
	for id, m := range r.byID {
		if m.UserID == userID {
			delete(r.byID, id)
			n++
		}
	}
	return n, nil
}

// seed stores a movie owned by userID and returns its id.
func (r *stubMovieRepo) seed(userID, title string) string {
	m, err := r.Create(context.Background(), &domain.Movie{
		Title:         title,
		Description:   title + " description",
		Author:        "Author",
		Genre:         domain.GenreDrama,
		DateOfRelease: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		UserID:        userID,
	})
	if err != nil {
		panic(err)
	}
	return m.ID
}

// ---------------------------------------------------------------------------
// Revocation store
// ---------------------------------------------------------------------------

type stubRevocations struct {
	revoked map[string]time.Time
	err     error
}

func newStubRevocations() *stubRevocations {
	return &stubRevocations{revoked: make(map[string]time.Time)}
}

func (r *stubRevocations) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if r.err != nil {
		return r.err
	}
	r.revoked[tokenID] = expiresAt
	return nil
}

func (r *stubRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[tokenID]
	return ok, nil
}

var (
	_ ports.CredentialStore = (*stubCredentialStore)(nil)
	_ ports.RoleStore       = (*stubRoleStore)(nil)
	_ ports.MovieRepository = (*stubMovieRepo)(nil)
	_ ports.RevocationStore = (*stubRevocations)(nil)
)

var errStoreDown = errors.New("store unavailable")
