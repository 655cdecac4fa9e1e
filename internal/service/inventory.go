package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository"
)

// InventoryPatch is a partial inventory update. Nil fields keep the stored
// value; ClearExpiry removes the expiry date (a nil ExpiryDate alone means
// "unchanged").
type InventoryPatch struct {
	Name         *string
	Category     *string
	Quantity     *float64
	Unit         *string
	ReorderLevel *float64
	ExpiryDate   *time.Time
	ClearExpiry  bool
}

// InventoryService orchestrates stock use cases. Status is never written by
// callers; it is recomputed from the merged record on every create and patch.
type InventoryService struct {
	repo repository.InventoryRepository
	log  *zap.Logger
}

// NewInventoryService wires an InventoryService.
func NewInventoryService(repo repository.InventoryRepository, log *zap.Logger) *InventoryService {
	return &InventoryService{repo: repo, log: log.Named("inventory-service")}
}

// Create validates the item, derives its status and persists it.
func (s *InventoryService) Create(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.RecomputeStatus(time.Now().UTC())
	return s.repo.Save(ctx, item)
}

// Get returns an item by id.
func (s *InventoryService) Get(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// List returns a page of items matching the filter.
func (s *InventoryService) List(ctx context.Context, filter repository.InventoryFilter, page, limit int) (repository.Page[*domain.InventoryItem], error) {
	return s.repo.FindAll(ctx, filter, page, limit)
}

// Patch merges the partial update onto the stored record, revalidates,
// recomputes the status from the merged view and persists the whole record.
// A patch that omits quantity keeps the stored quantity; it is never read as
// zero.
func (s *InventoryService) Patch(ctx context.Context, id string, patch InventoryPatch) (*domain.InventoryItem, error) {
	stored, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrNotFound
	}

	if patch.Name != nil {
		stored.Name = *patch.Name
	}
	if patch.Category != nil {
		stored.Category = *patch.Category
	}
	if patch.Quantity != nil {
		stored.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		stored.Unit = *patch.Unit
	}
	if patch.ReorderLevel != nil {
		stored.ReorderLevel = *patch.ReorderLevel
	}
	if patch.ClearExpiry {
		stored.ExpiryDate = nil
	} else if patch.ExpiryDate != nil {
		stored.ExpiryDate = patch.ExpiryDate
	}

	if err := stored.Validate(); err != nil {
		return nil, err
	}
	stored.RecomputeStatus(time.Now().UTC())

	updated, err := s.repo.Update(ctx, stored)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return updated, nil
}

// Delete removes an item permanently.
func (s *InventoryService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}
