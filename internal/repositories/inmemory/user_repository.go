package inmemory

import (
	"context"
	"sync"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// UserStorage is a map-backed UserRepository for inmemory mode and tests.
type UserStorage struct {
	mtx     sync.RWMutex
	storage map[int64]models.User
	byEmail map[string]int64
	nextID  int64
}

func NewUserStorage() *UserStorage {
	return &UserStorage{
		storage: make(map[int64]models.User),
		byEmail: make(map[string]int64),
		nextID:  1,
	}
}

func (s *UserStorage) Create(ctx context.Context, user *models.User) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, taken := s.byEmail[user.Email]; taken {
		return repositories.ErrDuplicateEmail
	}
	user.ID = s.nextID
	s.nextID++
	s.storage[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *UserStorage) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	user, ok := s.storage[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &user, nil
}

func (s *UserStorage) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	user := s.storage[id]
	return &user, nil
}

func (s *UserStorage) GetByRefreshToken(ctx context.Context, token string) (*models.User, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	for _, user := range s.storage {
		if user.RefreshToken != nil && *user.RefreshToken == token {
			u := user
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *UserStorage) UpdateRefresh(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	user, ok := s.storage[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	user.RefreshToken = &token
	user.RefreshExpiresAt = &expiresAt
	s.storage[userID] = user
	return nil
}
