package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle state of a sales order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
	OrderStatusReturned   OrderStatus = "returned"
)

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusProcessing || target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	case OrderStatusDelivered:
		return target == OrderStatusReturned
	case OrderStatusCancelled, OrderStatusReturned:
		return false // Terminal states
	}
	return false
}

// ItemAllocation records one warehouse's share of an order item's reservation.
// Consumed flips when a shipment pick turns the reservation into a physical
// decrement; a consumed share holds no stock that could be released.
type ItemAllocation struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	OrderItemID string `gorm:"type:uuid;not null;index"`
	WarehouseID string `gorm:"type:uuid;not null"`
	Quantity    int    `gorm:"not null"`
	Consumed    bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ItemAllocation) TableName() string {
	return "sales_order_item_allocations"
}

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	OrderID     string          `gorm:"type:uuid;not null;index"`
	ProductID   string          `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200)"`
	SKU         string          `gorm:"type:varchar(50)"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice

	// AllocatedWarehouseID is the warehouse that covers the largest share of
	// the reservation; the full split lives in Allocations.
	AllocatedWarehouseID string           `gorm:"type:uuid"`
	Allocations          []ItemAllocation `gorm:"foreignKey:OrderItemID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// SalesOrder represents a customer order
// It is the aggregate root for the order fulfillment workflow
type SalesOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   string          `gorm:"type:varchar(100);not null;index"`
	CustomerName string          `gorm:"type:varchar(200)"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes        string          `gorm:"type:text"`

	Items []SalesOrderItem `gorm:"foreignKey:OrderID;references:ID"`

	ConfirmedAt *time.Time
	ShippedAt   *time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new sales order in pending status
func NewSalesOrder(orderNumber, customerID, customerName string) (*SalesOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number is required")
	}
	if customerID == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID is required")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Status:            OrderStatusPending,
		TotalAmount:       decimal.Zero,
		Items:             make([]SalesOrderItem, 0),
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AllocationShare is one warehouse's portion of an item reservation
type AllocationShare struct {
	WarehouseID string
	Quantity    int
}

// AddAllocatedItem appends a line item whose stock reservation has already
// been planned. The first share is treated as the primary warehouse.
func (o *SalesOrder) AddAllocatedItem(productID, productName, sku string, quantity int, unitPrice decimal.Decimal, shares []AllocationShare) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to a pending order")
	}
	if productID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if len(shares) == 0 {
		return shared.NewDomainError("INVALID_ALLOCATION", "At least one allocation share is required")
	}

	total := 0
	for _, share := range shares {
		total += share.Quantity
	}
	if total != quantity {
		return shared.NewDomainError("INVALID_ALLOCATION",
			fmt.Sprintf("Allocation shares cover %d units but the item has %d", total, quantity))
	}

	now := time.Now()
	item := SalesOrderItem{
		ID:                   uuid.New().String(),
		OrderID:              o.ID,
		ProductID:            productID,
		ProductName:          productName,
		SKU:                  sku,
		Quantity:             quantity,
		UnitPrice:            unitPrice,
		Amount:               unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		AllocatedWarehouseID: shares[0].WarehouseID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, share := range shares {
		item.Allocations = append(item.Allocations, ItemAllocation{
			ID:          uuid.New().String(),
			OrderItemID: item.ID,
			WarehouseID: share.WarehouseID,
			Quantity:    share.Quantity,
		})
	}

	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Confirm transitions the order to confirmed once all items are reserved
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot confirm order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot confirm order without items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))

	return nil
}

// Cancel cancels the order. Orders that have shipped cannot be cancelled.
func (o *SalesOrder) Cancel(reason string) error {
	if o.Status == OrderStatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Order is already cancelled")
	}
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderCancelledEvent(o, reason))

	return nil
}

// MarkProcessing records that picking has started
func (o *SalesOrder) MarkProcessing() error {
	if !o.Status.CanTransitionTo(OrderStatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start processing order in %s status", o.Status))
	}

	o.Status = OrderStatusProcessing
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// MarkShipped records that the shipment has left the warehouse
func (o *SalesOrder) MarkShipped() error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// MarkDelivered records delivery to the customer
func (o *SalesOrder) MarkDelivered() error {
	if !o.Status.CanTransitionTo(OrderStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderDeliveredEvent(o))

	return nil
}

// MarkReturned records that the whole order came back through returns
func (o *SalesOrder) MarkReturned() error {
	if !o.Status.CanTransitionTo(OrderStatusReturned) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot return order in %s status", o.Status))
	}

	o.Status = OrderStatusReturned
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// TotalQuantity returns the total units ordered across all items
func (o *SalesOrder) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// OrderedQuantity returns the units ordered for a product, zero if absent
func (o *SalesOrder) OrderedQuantity(productID string) int {
	for _, item := range o.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// HasAllocationAt reports whether any item holds an allocation share at
// the given warehouse
func (o *SalesOrder) HasAllocationAt(warehouseID string) bool {
	for _, item := range o.Items {
		for _, alloc := range item.Allocations {
			if alloc.WarehouseID == warehouseID {
				return true
			}
		}
	}
	return false
}

func (o *SalesOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalAmount = total
}
