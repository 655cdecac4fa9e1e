package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lakindu62/kidsfeed/internal/domain"
	"github.com/lakindu62/kidsfeed/internal/repository/memory"
	"github.com/lakindu62/kidsfeed/internal/service"
)

func newInventoryFixture() *domain.InventoryItem {
	return &domain.InventoryItem{
		Name:         "Rice",
		Category:     "grains",
		Quantity:     50,
		Unit:         "kg",
		ReorderLevel: 10,
	}
}

func TestInventoryCreateDerivesStatus(t *testing.T) {
	svc := service.NewInventoryService(memory.NewInventoryRepository(), zap.NewNop())

	created, err := svc.Create(context.Background(), newInventoryFixture())
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryActive, created.Status)

	empty := newInventoryFixture()
	empty.Quantity = 0
	created, err = svc.Create(context.Background(), empty)
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryOutOfStock, created.Status)
}

func TestInventoryPatchMergesOntoStored(t *testing.T) {
	svc := service.NewInventoryService(memory.NewInventoryRepository(), zap.NewNop())

	created, err := svc.Create(context.Background(), newInventoryFixture())
	require.NoError(t, err)

	// Patch only the name: quantity must keep its stored value, not
	// collapse to zero.
	name := "Basmati Rice"
	patched, err := svc.Patch(context.Background(), created.ID, service.InventoryPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Basmati Rice", patched.Name)
	assert.Equal(t, 50.0, patched.Quantity)
	assert.Equal(t, domain.InventoryActive, patched.Status)
}

func TestInventoryPatchRecomputesStatus(t *testing.T) {
	svc := service.NewInventoryService(memory.NewInventoryRepository(), zap.NewNop())

	created, err := svc.Create(context.Background(), newInventoryFixture())
	require.NoError(t, err)

	quantity := 3.0
	patched, err := svc.Patch(context.Background(), created.ID, service.InventoryPatch{Quantity: &quantity})
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryLowStock, patched.Status)

	expired := time.Now().UTC().Add(-time.Hour)
	patched, err = svc.Patch(context.Background(), created.ID, service.InventoryPatch{ExpiryDate: &expired})
	require.NoError(t, err)
	assert.Equal(t, domain.InventoryExpired, patched.Status)

	patched, err = svc.Patch(context.Background(), created.ID, service.InventoryPatch{ClearExpiry: true})
	require.NoError(t, err)
	assert.Nil(t, patched.ExpiryDate)
	assert.Equal(t, domain.InventoryLowStock, patched.Status)
}

func TestInventoryPatchValidatesMergedRecord(t *testing.T) {
	svc := service.NewInventoryService(memory.NewInventoryRepository(), zap.NewNop())

	created, err := svc.Create(context.Background(), newInventoryFixture())
	require.NoError(t, err)

	negative := -5.0
	_, err = svc.Patch(context.Background(), created.ID, service.InventoryPatch{Quantity: &negative})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestInventoryPatchNotFound(t *testing.T) {
	svc := service.NewInventoryService(memory.NewInventoryRepository(), zap.NewNop())

	name := "Ghost"
	_, err := svc.Patch(context.Background(), "no-such-id", service.InventoryPatch{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInventoryDelete(t *testing.T) {
	svc := service.NewInventoryService(memory.NewInventoryRepository(), zap.NewNop())

	created, err := svc.Create(context.Background(), newInventoryFixture())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))

	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
