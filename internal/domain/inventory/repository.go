package inventory

import (
	"context"

	"github.com/scm/backend/internal/domain/shared"
)

// InventoryItemRepository defines the interface for inventory persistence
type InventoryItemRepository interface {
	// FindByID finds an inventory item by its ID
	FindByID(ctx context.Context, id string) (*InventoryItem, error)

	// FindByProductAndWarehouse finds the inventory record for a product-warehouse pair
	FindByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*InventoryItem, error)

	// FindByProduct finds all inventory records for a product across warehouses
	FindByProduct(ctx context.Context, productID string) ([]InventoryItem, error)

	// FindByWarehouse finds all inventory records at a warehouse
	FindByWarehouse(ctx context.Context, warehouseID string, filter shared.Filter) ([]InventoryItem, error)

	// FindAll finds all inventory records matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InventoryItem, error)

	// GetOrCreate returns the inventory record for a product-warehouse pair,
	// creating an empty one if it does not exist
	GetOrCreate(ctx context.Context, productID, warehouseID string) (*InventoryItem, error)

	// Save creates or updates an inventory item using optimistic locking
	Save(ctx context.Context, item *InventoryItem) error

	// Count counts inventory records matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
