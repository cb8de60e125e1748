package user

import (
	"context"
	"sync"
	"time"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by username
}

// NewMemoryRepository returns a Repository kept in process memory.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *memoryRepository) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.Username]; exists {
		return errDuplicateUsername
	}
	u.CreatedAt = time.Now().UTC()
	r.users[u.Username] = *u
	return nil
}

func (r *memoryRepository) Update(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[u.Username]
	if !ok || stored.ID != u.ID {
		return ErrNotFound
	}
	stored.PasswordHash = u.PasswordHash
	stored.IsStaff = u.IsStaff
	r.users[u.Username] = stored
	return nil
}

func (r *memoryRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, u := range r.users {
		if u.ID == id {
			u.LastLoginAt = &t
			r.users[name] = u
			return nil
		}
	}
	return ErrNotFound
}
