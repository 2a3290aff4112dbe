package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending           PurchaseOrderStatus = "pending"
	PurchaseOrderStatusApproved          PurchaseOrderStatus = "approved"
	PurchaseOrderStatusOrdered           PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "partially_received"
	PurchaseOrderStatusReceived          PurchaseOrderStatus = "received"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID               string          `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID  string          `gorm:"type:uuid;not null;index"`
	ProductID        string          `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(200)"`
	Quantity         int             `gorm:"not null"`
	ReceivedQuantity int             `gorm:"not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitCost
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// RemainingQuantity returns the units still expected from the supplier
func (i *PurchaseOrderItem) RemainingQuantity() int {
	return i.Quantity - i.ReceivedQuantity
}

// PurchaseOrder represents an order placed with a supplier
// It is the aggregate root for the receiving workflow
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber     string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID   string              `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200)"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Notes        string              `gorm:"type:text"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID"`

	ExpectedDate *time.Time
	ReceivedDate *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in pending status
func NewPurchaseOrder(poNumber, supplierID, supplierName string) (*PurchaseOrder, error) {
	if poNumber == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "Purchase order number is required")
	}
	if supplierID == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID is required")
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Status:            PurchaseOrderStatusPending,
		TotalAmount:       decimal.Zero,
		Items:             make([]PurchaseOrderItem, 0),
	}

	po.AddDomainEvent(NewPurchaseOrderCreatedEvent(po))

	return po, nil
}

// AddItem appends a line item to a pending purchase order
func (p *PurchaseOrder) AddItem(productID, productName string, quantity int, unitCost decimal.Decimal) error {
	if p.Status != PurchaseOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to a pending purchase order")
	}
	if productID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitCost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	p.Items = append(p.Items, PurchaseOrderItem{
		ID:              uuid.New().String(),
		PurchaseOrderID: p.ID,
		ProductID:       productID,
		ProductName:     productName,
		Quantity:        quantity,
		UnitCost:        unitCost,
		Amount:          unitCost.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	p.recalculateTotal()
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// SetExpectedDate sets the promised delivery date
func (p *PurchaseOrder) SetExpectedDate(date *time.Time) {
	p.ExpectedDate = date
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Approve marks a pending purchase order as approved for ordering
func (p *PurchaseOrder) Approve() error {
	if p.Status != PurchaseOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot approve purchase order in %s status", p.Status))
	}

	p.Status = PurchaseOrderStatusApproved
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkOrdered records that the order was placed with the supplier
func (p *PurchaseOrder) MarkOrdered() error {
	if p.Status != PurchaseOrderStatusApproved {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot mark purchase order in %s status as ordered", p.Status))
	}

	p.Status = PurchaseOrderStatusOrdered
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// isReceivable reports whether goods may arrive against the order in its
// current state. Approval and ordering are optional steps, so a pending
// order is receivable too.
func (p *PurchaseOrder) isReceivable() bool {
	switch p.Status {
	case PurchaseOrderStatusPending, PurchaseOrderStatusApproved,
		PurchaseOrderStatusOrdered, PurchaseOrderStatusPartiallyReceived:
		return true
	}
	return false
}

// ReceiveItem records goods arriving against a line item.
// Receiving more than the outstanding quantity is rejected.
func (p *PurchaseOrder) ReceiveItem(itemID string, quantity int) (*PurchaseOrderItem, error) {
	if !p.isReceivable() {
		return nil, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot receive against purchase order in %s status", p.Status))
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
	}

	for idx := range p.Items {
		item := &p.Items[idx]
		if item.ID != itemID {
			continue
		}
		if quantity > item.RemainingQuantity() {
			return nil, shared.NewDomainError("EXCEEDS_REMAINING",
				fmt.Sprintf("Received quantity %d exceeds remaining %d for item", quantity, item.RemainingQuantity()))
		}

		item.ReceivedQuantity += quantity
		item.UpdatedAt = time.Now()
		return item, nil
	}

	return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Purchase order item not found: "+itemID)
}

// FinalizeReceipt updates the order status after a receiving pass.
// A fully received order is closed with a received date.
func (p *PurchaseOrder) FinalizeReceipt() error {
	if !p.isReceivable() {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot finalize receipt for purchase order in %s status", p.Status))
	}

	now := time.Now()
	if p.IsFullyReceived() {
		p.Status = PurchaseOrderStatusReceived
		p.ReceivedDate = &now
	} else {
		p.Status = PurchaseOrderStatusPartiallyReceived
	}
	p.UpdatedAt = now
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseOrderReceivedEvent(p))

	return nil
}

// Cancel cancels a purchase order that has not received any goods
func (p *PurchaseOrder) Cancel() error {
	switch p.Status {
	case PurchaseOrderStatusPending, PurchaseOrderStatusApproved, PurchaseOrderStatusOrdered:
	default:
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel purchase order in %s status", p.Status))
	}

	p.Status = PurchaseOrderStatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsFullyReceived reports whether every line item has arrived in full
func (p *PurchaseOrder) IsFullyReceived() bool {
	for _, item := range p.Items {
		if item.ReceivedQuantity < item.Quantity {
			return false
		}
	}
	return len(p.Items) > 0
}

func (p *PurchaseOrder) recalculateTotal() {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Amount)
	}
	p.TotalAmount = total
}
