package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/shared"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id string) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByProductAndWarehouse finds the inventory record for a product-warehouse pair
func (r *GormInventoryItemRepository) FindByProductAndWarehouse(ctx context.Context, productID, warehouseID string) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByProduct finds all inventory records for a product across warehouses
func (r *GormInventoryItemRepository) FindByProduct(ctx context.Context, productID string) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("warehouse_id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByWarehouse finds all inventory records at a warehouse
func (r *GormInventoryItemRepository) FindByWarehouse(ctx context.Context, warehouseID string, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	err := r.filterScope(r.db.WithContext(ctx).Model(&inventory.InventoryItem{}), filter).
		Where("warehouse_id = ?", warehouseID).
		Scopes(listScope(filter, InventorySortFields, "updated_at")).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll finds all inventory records matching the filter
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	err := r.filterScope(r.db.WithContext(ctx).Model(&inventory.InventoryItem{}), filter).
		Scopes(listScope(filter, InventorySortFields, "updated_at")).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetOrCreate returns the inventory record for a product-warehouse pair,
// creating an empty one if it does not exist
func (r *GormInventoryItemRepository) GetOrCreate(ctx context.Context, productID, warehouseID string) (*inventory.InventoryItem, error) {
	item, err := r.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	item, err = inventory.NewInventoryItem(productID, warehouseID)
	if err != nil {
		return nil, err
	}

	// ON CONFLICT handles the race where two transactions create the same pair
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "warehouse_id"}},
			DoNothing: true,
		}).
		Create(item)
	if result.Error != nil {
		return nil, result.Error
	}

	// If the row wasn't created (conflict), fetch the existing one
	if result.RowsAffected == 0 {
		return r.FindByProductAndWarehouse(ctx, productID, warehouseID)
	}

	return item, nil
}

// Save updates an inventory item with optimistic locking. The aggregate bumps
// its version on every mutation, so the row must still carry the previous
// version for the update to apply.
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	result := r.db.WithContext(ctx).
		Model(&inventory.InventoryItem{}).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"quantity":          item.Quantity,
			"reserved_quantity": item.ReservedQuantity,
			"batch_number":      item.BatchNumber,
			"expiry_date":       item.ExpiryDate,
			"version":           item.Version,
			"updated_at":        item.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts inventory records matching the filter
func (r *GormInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filterScope(r.db.WithContext(ctx).Model(&inventory.InventoryItem{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// filterScope narrows the query by the filter's field-level criteria.
// Pagination and ordering are handled separately so Count sees the
// same predicate as the list queries.
func (r *GormInventoryItemRepository) filterScope(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "batch_number":
			query = query.Where("batch_number = ?", value)
		case "in_stock":
			if value == true {
				query = query.Where("quantity > 0")
			} else {
				query = query.Where("quantity = 0")
			}
		case "expiring_before":
			query = query.Where("expiry_date IS NOT NULL AND expiry_date < ?", value)
		}
	}

	return query
}

// Ensure GormInventoryItemRepository implements InventoryItemRepository
var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
