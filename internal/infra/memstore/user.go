package memstore

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"food-rescue/internal/domain/user"
	"food-rescue/internal/infra"

	"github.com/google/uuid"
)

type UserStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*user.User
	byEmail map[string]uuid.UUID
	logger  *slog.Logger
}

func NewUserStore(logger *slog.Logger) *UserStore {
	return &UserStore{
		byID:    make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]uuid.UUID),
		logger:  logger.With(slog.String("component", "memstore.users")),
	}
}

func (s *UserStore) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := u.Email().Value()
	if _, taken := s.byEmail[email]; taken {
		return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "email already registered", nil)
	}
	s.byID[u.ID()] = u
	s.byEmail[email] = u.ID()
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "user not found", nil)
	}
	return u, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "user not found", nil)
	}
	return s.byID[id], nil
}

func (s *UserStore) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byID[id]
	if !ok {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "user not found", nil)
	}
	s.byID[id] = user.ReconstructUser(
		u.ID(), u.Email(), u.PasswordHash(), u.Role(), u.Profile(), &at, u.CreatedAt(), at,
	)
	return nil
}
