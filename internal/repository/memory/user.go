package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lakindu62/kidsfeed/internal/domain"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.User
}

// NewUserRepository returns an empty in-memory user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{records: make(map[string]*domain.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, stored := range r.records {
		if strings.ToLower(stored.Email) == email {
			return nil, domain.ErrAlreadyExists
		}
	}

	now := time.Now().UTC()
	stored := *user
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.records[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, stored := range r.records {
		if strings.ToLower(stored.Email) == email {
			out := *stored
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	out := *stored
	return &out, nil
}
