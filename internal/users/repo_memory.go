package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo stores users in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]User
	bySub map[string]string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:  make(map[string]User),
		bySub: make(map[string]string),
	}
}

// UpsertByGoogleSub creates or refreshes the user keyed by Google subject.
func (r *MemoryRepo) UpsertByGoogleSub(ctx context.Context, user User) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if id, ok := r.bySub[user.GoogleSub]; ok {
		existing := r.byID[id]
		existing.Email = user.Email
		existing.Name = user.Name
		existing.Picture = user.Picture
		existing.UpdatedAt = now
		r.byID[id] = existing
		return existing, nil
	}

	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = user
	r.bySub[user.GoogleSub] = user.ID
	return user, nil
}

// GetByID returns a user by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

var _ Repo = (*MemoryRepo)(nil)
