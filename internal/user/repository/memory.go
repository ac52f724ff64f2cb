package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/pandamarket/api/internal/user/domain"
	"github.com/pandamarket/api/pkg/apperror"
)

// MemoryUserRepository is an in-memory UserRepository for tests. It
// enforces the same email and oauth uniqueness as the database schema.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]domain.User
	nextID uint
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uint]domain.User), nextID: 1}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if user.Email != nil && existing.Email != nil && *existing.Email == *user.Email {
			return gorm.ErrDuplicatedKey
		}
		if user.Provider != nil && existing.Provider != nil &&
			*existing.Provider == *user.Provider && *existing.ProviderID == *user.ProviderID {
			return gorm.ErrDuplicatedKey
		}
	}

	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	out := user
	return &out, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email != nil && *user.Email == email {
			out := user
			return &out, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (r *MemoryUserRepository) FindByProvider(ctx context.Context, provider, providerID string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Provider != nil && *user.Provider == provider &&
			user.ProviderID != nil && *user.ProviderID == providerID {
			out := user
			return &out, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (r *MemoryUserRepository) Save(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return apperror.NotFound("user not found")
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}
