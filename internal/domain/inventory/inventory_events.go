package inventory

import (
	"github.com/scm/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeInventoryItem = "InventoryItem"

// Event type constants
const (
	EventTypeStockIncreased      = "StockIncreased"
	EventTypeStockDecreased      = "StockDecreased"
	EventTypeStockReserved       = "StockReserved"
	EventTypeStockReleased       = "StockReleased"
	EventTypeStockBelowThreshold = "StockBelowThreshold"
)

// StockIncreasedEvent is published when physical stock is added
type StockIncreasedEvent struct {
	shared.BaseDomainEvent
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	NewQuantity int    `json:"new_quantity"`
}

// NewStockIncreasedEvent creates a new StockIncreasedEvent
func NewStockIncreasedEvent(item *InventoryItem, quantity int) *StockIncreasedEvent {
	return &StockIncreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockIncreased, AggregateTypeInventoryItem, item.ID),
		ProductID:       item.ProductID,
		WarehouseID:     item.WarehouseID,
		Quantity:        quantity,
		NewQuantity:     item.Quantity,
	}
}

// StockDecreasedEvent is published when physical stock is removed
type StockDecreasedEvent struct {
	shared.BaseDomainEvent
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	NewQuantity int    `json:"new_quantity"`
}

// NewStockDecreasedEvent creates a new StockDecreasedEvent
func NewStockDecreasedEvent(item *InventoryItem, quantity int) *StockDecreasedEvent {
	return &StockDecreasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDecreased, AggregateTypeInventoryItem, item.ID),
		ProductID:       item.ProductID,
		WarehouseID:     item.WarehouseID,
		Quantity:        quantity,
		NewQuantity:     item.Quantity,
	}
}

// StockReservedEvent is published when stock is held for a sales order
type StockReservedEvent struct {
	shared.BaseDomainEvent
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Reserved    int    `json:"reserved"`
}

// NewStockReservedEvent creates a new StockReservedEvent
func NewStockReservedEvent(item *InventoryItem, quantity int) *StockReservedEvent {
	return &StockReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReserved, AggregateTypeInventoryItem, item.ID),
		ProductID:       item.ProductID,
		WarehouseID:     item.WarehouseID,
		Quantity:        quantity,
		Reserved:        item.ReservedQuantity,
	}
}

// StockReleasedEvent is published when a reservation is returned to the available pool
type StockReleasedEvent struct {
	shared.BaseDomainEvent
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
	Reserved    int    `json:"reserved"`
}

// NewStockReleasedEvent creates a new StockReleasedEvent
func NewStockReleasedEvent(item *InventoryItem, quantity int) *StockReleasedEvent {
	return &StockReleasedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReleased, AggregateTypeInventoryItem, item.ID),
		ProductID:       item.ProductID,
		WarehouseID:     item.WarehouseID,
		Quantity:        quantity,
		Reserved:        item.ReservedQuantity,
	}
}

// StockBelowThresholdEvent is published when stock for a product drops
// below its reorder threshold after a decrement
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID        string `json:"product_id"`
	WarehouseID      string `json:"warehouse_id"`
	Quantity         int    `json:"quantity"`
	ReorderThreshold int    `json:"reorder_threshold"`
	ReorderQuantity  int    `json:"reorder_quantity"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(item *InventoryItem, threshold, reorderQuantity int) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, AggregateTypeInventoryItem, item.ID),
		ProductID:        item.ProductID,
		WarehouseID:      item.WarehouseID,
		Quantity:         item.Quantity,
		ReorderThreshold: threshold,
		ReorderQuantity:  reorderQuantity,
	}
}
