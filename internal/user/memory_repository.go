package user

import (
	"context"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]User
}

// NewMemoryRepository constructs an in-memory repository for tests and
// database-less development runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.storage[u.Email]; exists {
		return ErrEmailTaken
	}
	r.storage[u.Email] = u
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.storage[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *memoryRepository) UpdateAvatar(_ context.Context, email, avatarURL string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.storage[email]
	if !ok {
		return User{}, ErrNotFound
	}
	u.AvatarURL = avatarURL
	r.storage[email] = u
	return u, nil
}

func (r *memoryRepository) Confirm(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.storage[email]
	if !ok {
		return User{}, ErrNotFound
	}
	u.Confirmed = true
	r.storage[email] = u
	return u, nil
}
