package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

// InventoryRepository is an in-memory repository.InventoryRepository.
type InventoryRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.InventoryItem
	order   []string
}

// NewInventoryRepository returns an empty in-memory inventory store.
func NewInventoryRepository() *InventoryRepository {
	return &InventoryRepository{records: make(map[string]*domain.InventoryItem)}
}

func (r *InventoryRepository) Save(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := cloneItem(item)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.records[stored.ID] = stored
	r.order = append(r.order, stored.ID)
	return cloneItem(stored), nil
}

func (r *InventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return cloneItem(stored), nil
}

func (r *InventoryRepository) FindAll(ctx context.Context, filter repository.InventoryFilter, page, limit int) (repository.Page[*domain.InventoryItem], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit < 1 {
		limit = repository.DefaultLimit
	}
	var matched []*domain.InventoryItem
	for _, id := range r.order {
		stored := r.records[id]
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		if filter.Category != "" && stored.Category != filter.Category {
			continue
		}
		matched = append(matched, stored)
	}

	total := int64(len(matched))
	start := repository.Skip(page, limit)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	items := make([]*domain.InventoryItem, 0, end-start)
	for _, stored := range matched[start:end] {
		items = append(items, cloneItem(stored))
	}
	return repository.NewPage(items, total, page, limit), nil
}

func (r *InventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[item.ID]
	if !ok {
		return nil, nil
	}
	updated := cloneItem(item)
	updated.CreatedAt = stored.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	r.records[item.ID] = updated
	return cloneItem(updated), nil
}

func (r *InventoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func cloneItem(item *domain.InventoryItem) *domain.InventoryItem {
	clone := *item
	if item.ExpiryDate != nil {
		expiry := *item.ExpiryDate
		clone.ExpiryDate = &expiry
	}
	return &clone
}
