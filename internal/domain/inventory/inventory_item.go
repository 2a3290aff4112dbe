package inventory

import (
	"time"

	"github.com/scm/backend/internal/domain/shared"
)

// InventoryItem represents stock of a product held at a specific warehouse.
// It is the aggregate root for inventory operations.
// The composite identifier is ProductID + WarehouseID.
type InventoryItem struct {
	shared.BaseAggregateRoot
	ProductID        string     `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:1"`
	WarehouseID      string     `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_product_warehouse,priority:2"`
	Quantity         int        `gorm:"not null;default:0"` // Physical units on hand
	ReservedQuantity int        `gorm:"not null;default:0"` // Units held for open sales orders
	BatchNumber      string     `gorm:"type:varchar(100)"`
	ExpiryDate       *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates an empty inventory record for a product-warehouse pair
func NewInventoryItem(productID, warehouseID string) (*InventoryItem, error) {
	if productID == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == "" {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &InventoryItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		WarehouseID:       warehouseID,
	}, nil
}

// AvailableQuantity returns the units free for new reservations
func (i *InventoryItem) AvailableQuantity() int {
	return i.Quantity - i.ReservedQuantity
}

// Increase adds physical stock, typically from purchase receiving or a transfer in.
// Batch number and expiry date overwrite the current values when provided.
func (i *InventoryItem) Increase(quantity int, batchNumber string, expiryDate *time.Time) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.Quantity += quantity
	if batchNumber != "" {
		i.BatchNumber = batchNumber
	}
	if expiryDate != nil {
		i.ExpiryDate = expiryDate
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockIncreasedEvent(i, quantity))

	return nil
}

// Decrease removes physical stock, typically when a shipment is picked.
// Any reservation covering the removed units is consumed with them; the
// reserved quantity never goes below zero.
func (i *InventoryItem) Decrease(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.Quantity < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock to decrement")
	}

	i.Quantity -= quantity
	i.ReservedQuantity -= quantity
	if i.ReservedQuantity < 0 {
		i.ReservedQuantity = 0
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockDecreasedEvent(i, quantity))

	return nil
}

// Reserve holds units for a sales order without removing them from stock
func (i *InventoryItem) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.AvailableQuantity() < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient available stock to reserve")
	}

	i.ReservedQuantity += quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockReservedEvent(i, quantity))

	return nil
}

// Release returns reserved units to the available pool, clamping at zero
// so releasing more than is reserved is not an error.
func (i *InventoryItem) Release(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	i.ReservedQuantity -= quantity
	if i.ReservedQuantity < 0 {
		i.ReservedQuantity = 0
	}
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockReleasedEvent(i, quantity))

	return nil
}

// TransferOut removes available stock for a warehouse transfer.
// Reserved units stay behind; only free stock may move.
func (i *InventoryItem) TransferOut(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if i.AvailableQuantity() < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient available stock to transfer")
	}

	i.Quantity -= quantity
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewStockDecreasedEvent(i, quantity))

	return nil
}
