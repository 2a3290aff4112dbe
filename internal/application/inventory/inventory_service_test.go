package inventory

import (
	"context"
	"testing"

	"github.com/scm/backend/internal/domain/catalog"
	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceFixture struct {
	inventoryRepo *fakeInventoryRepo
	productRepo   *fakeProductRepo
	warehouseRepo *fakeWarehouseRepo
	publisher     *capturingPublisher
	service       *InventoryService
	product       *catalog.Product
	warehouse     *partner.Warehouse
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	inventoryRepo := newFakeInventoryRepo()
	productRepo := newFakeProductRepo()
	warehouseRepo := newFakeWarehouseRepo()
	scope := NewNoOpTransactionScope(inventoryRepo, productRepo, warehouseRepo)

	product, err := catalog.NewProduct("SKU-001", "Widget", "pcs")
	require.NoError(t, err)
	product.ClearDomainEvents()
	productRepo.put(product)

	warehouse, err := partner.NewWarehouse("WH-A", "Main", "")
	require.NoError(t, err)
	warehouseRepo.put(warehouse)

	service := NewInventoryService(inventoryRepo, productRepo, scope)
	publisher := &capturingPublisher{}
	service.SetEventPublisher(publisher)

	return &serviceFixture{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		publisher:     publisher,
		service:       service,
		product:       product,
		warehouse:     warehouse,
	}
}

func TestInventoryServiceIncrement(t *testing.T) {
	t.Run("creates record on first receipt", func(t *testing.T) {
		f := newServiceFixture(t)

		resp, err := f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID:   f.product.ID,
			WarehouseID: f.warehouse.ID,
			Quantity:    50,
			BatchNumber: "BATCH-1",
		})
		require.NoError(t, err)
		assert.Equal(t, 50, resp.Quantity)
		assert.Equal(t, "BATCH-1", resp.BatchNumber)
		assert.Contains(t, f.publisher.eventTypes(), inventory.EventTypeStockIncreased)
	})

	t.Run("fails for unknown product", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID:   "missing",
			WarehouseID: f.warehouse.ID,
			Quantity:    50,
		})
		require.Error(t, err)
	})

	t.Run("publishes nothing when the transaction fails", func(t *testing.T) {
		f := newServiceFixture(t)
		scope := &commitFailScope{inner: NewNoOpTransactionScope(f.inventoryRepo, f.productRepo, f.warehouseRepo)}
		service := NewInventoryService(f.inventoryRepo, f.productRepo, scope)
		publisher := &capturingPublisher{}
		service.SetEventPublisher(publisher)

		_, err := service.Increment(context.Background(), AdjustStockRequest{
			ProductID:   f.product.ID,
			WarehouseID: f.warehouse.ID,
			Quantity:    50,
		})
		require.Error(t, err)
		assert.Empty(t, publisher.events)
	})

	t.Run("fails for unknown warehouse", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID:   f.product.ID,
			WarehouseID: "missing",
			Quantity:    50,
		})
		require.Error(t, err)
	})
}

func TestInventoryServiceDecrement(t *testing.T) {
	t.Run("removes stock", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 50,
		})
		require.NoError(t, err)

		resp, err := f.service.Decrement(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, 30, resp.Quantity)
	})

	t.Run("fails beyond stock on hand", func(t *testing.T) {
		f := newServiceFixture(t)
		_, err := f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 10,
		})
		require.NoError(t, err)

		_, err = f.service.Decrement(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 11,
		})
		require.Error(t, err)
	})

	t.Run("emits low-stock event under reorder threshold", func(t *testing.T) {
		f := newServiceFixture(t)
		require.NoError(t, f.product.SetReorderPolicy(25, 100))

		_, err := f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 30,
		})
		require.NoError(t, err)

		_, err = f.service.Decrement(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 10,
		})
		require.NoError(t, err)

		assert.Contains(t, f.publisher.eventTypes(), inventory.EventTypeStockBelowThreshold)
	})

	t.Run("no low-stock event above threshold", func(t *testing.T) {
		f := newServiceFixture(t)
		require.NoError(t, f.product.SetReorderPolicy(5, 100))

		_, err := f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 30,
		})
		require.NoError(t, err)

		_, err = f.service.Decrement(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 10,
		})
		require.NoError(t, err)

		assert.NotContains(t, f.publisher.eventTypes(), inventory.EventTypeStockBelowThreshold)
	})
}

func TestInventoryServiceRelease(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.service.Increment(context.Background(), AdjustStockRequest{
		ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 50,
	})
	require.NoError(t, err)

	item, err := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), f.product.ID, f.warehouse.ID)
	require.NoError(t, err)
	require.NoError(t, item.Reserve(20))

	resp, err := f.service.Release(context.Background(), ReleaseStockRequest{
		ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 30,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ReservedQuantity)
	assert.Equal(t, 50, resp.AvailableQuantity)
}

func TestTransferService(t *testing.T) {
	setup := func(t *testing.T) (*serviceFixture, *TransferService, *partner.Warehouse) {
		f := newServiceFixture(t)
		dest, err := partner.NewWarehouse("WH-B", "Secondary", "")
		require.NoError(t, err)
		f.warehouseRepo.put(dest)

		_, err = f.service.Increment(context.Background(), AdjustStockRequest{
			ProductID: f.product.ID, WarehouseID: f.warehouse.ID, Quantity: 100, BatchNumber: "BATCH-1",
		})
		require.NoError(t, err)

		scope := NewNoOpTransactionScope(f.inventoryRepo, f.productRepo, f.warehouseRepo)
		return f, NewTransferService(scope), dest
	}

	t.Run("moves stock and carries batch info", func(t *testing.T) {
		f, transfer, dest := setup(t)

		result, err := transfer.Transfer(context.Background(), TransferStockRequest{
			ProductID:         f.product.ID,
			SourceWarehouseID: f.warehouse.ID,
			DestWarehouseID:   dest.ID,
			Quantity:          40,
		})
		require.NoError(t, err)
		assert.Equal(t, 60, result.Source.Quantity)
		assert.Equal(t, 40, result.Destination.Quantity)
		assert.Equal(t, "BATCH-1", result.Destination.BatchNumber)
	})

	t.Run("rejects same warehouse", func(t *testing.T) {
		f, transfer, _ := setup(t)

		_, err := transfer.Transfer(context.Background(), TransferStockRequest{
			ProductID:         f.product.ID,
			SourceWarehouseID: f.warehouse.ID,
			DestWarehouseID:   f.warehouse.ID,
			Quantity:          10,
		})
		require.Error(t, err)
	})

	t.Run("leaves reserved stock behind", func(t *testing.T) {
		f, transfer, dest := setup(t)
		item, err := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), f.product.ID, f.warehouse.ID)
		require.NoError(t, err)
		require.NoError(t, item.Reserve(70))

		_, err = transfer.Transfer(context.Background(), TransferStockRequest{
			ProductID:         f.product.ID,
			SourceWarehouseID: f.warehouse.ID,
			DestWarehouseID:   dest.ID,
			Quantity:          40,
		})
		require.Error(t, err)

		require.NoError(t, item.Release(40))
		result, err := transfer.Transfer(context.Background(), TransferStockRequest{
			ProductID:         f.product.ID,
			SourceWarehouseID: f.warehouse.ID,
			DestWarehouseID:   dest.ID,
			Quantity:          40,
		})
		require.NoError(t, err)
		assert.Equal(t, 60, result.Source.Quantity)
		assert.Equal(t, 30, result.Source.ReservedQuantity)
	})

	t.Run("fails for unknown destination warehouse", func(t *testing.T) {
		f, transfer, _ := setup(t)

		_, err := transfer.Transfer(context.Background(), TransferStockRequest{
			ProductID:         f.product.ID,
			SourceWarehouseID: f.warehouse.ID,
			DestWarehouseID:   "missing",
			Quantity:          10,
		})
		require.Error(t, err)
	})
}
