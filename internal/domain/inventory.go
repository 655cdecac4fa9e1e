package domain

import (
	"strings"
	"time"
)

// InventoryStatus is the derived stock state of an inventory item.
type InventoryStatus string

const (
	InventoryActive     InventoryStatus = "ACTIVE"
	InventoryLowStock   InventoryStatus = "LOW_STOCK"
	InventoryOutOfStock InventoryStatus = "OUT_OF_STOCK"
	InventoryExpired    InventoryStatus = "EXPIRED"
)

// DefaultReorderLevel is used when an item is created without one.
const DefaultReorderLevel = 10

// DeriveInventoryStatus recomputes an item's status from scratch. Precedence
// is fixed: expiry beats stock-out beats low stock.
func DeriveInventoryStatus(quantity, reorderLevel float64, expiryDate *time.Time, now time.Time) InventoryStatus {
	switch {
	case expiryDate != nil && expiryDate.Before(now):
		return InventoryExpired
	case quantity == 0:
		return InventoryOutOfStock
	case quantity <= reorderLevel:
		return InventoryLowStock
	default:
		return InventoryActive
	}
}

// InventoryItem is a stock record for the school kitchen. Status is always
// derived from quantity, reorder level and expiry; callers never set it
// directly.
type InventoryItem struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Quantity     float64         `json:"quantity"`
	Unit         string          `json:"unit"`
	ReorderLevel float64         `json:"reorderLevel"`
	ExpiryDate   *time.Time      `json:"expiryDate,omitempty"`
	Status       InventoryStatus `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Validate checks the item invariants.
func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return NewValidationError("name", "name required")
	}
	if i.Quantity < 0 {
		return NewValidationError("quantity", "must not be negative")
	}
	if i.ReorderLevel < 0 {
		return NewValidationError("reorderLevel", "must not be negative")
	}
	return nil
}

// RecomputeStatus refreshes the derived status as of now.
func (i *InventoryItem) RecomputeStatus(now time.Time) {
	i.Status = DeriveInventoryStatus(i.Quantity, i.ReorderLevel, i.ExpiryDate, now)
}
