package fulfillment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReturnStatus represents the lifecycle state of a return request
type ReturnStatus string

const (
	ReturnStatusPending   ReturnStatus = "pending"
	ReturnStatusApproved  ReturnStatus = "approved"
	ReturnStatusRejected  ReturnStatus = "rejected"
	ReturnStatusProcessed ReturnStatus = "processed"
)

// ReturnItem represents one product coming back from a customer
type ReturnItem struct {
	ID           string          `gorm:"type:uuid;primaryKey"`
	ReturnID     string          `gorm:"type:uuid;not null;index"`
	ProductID    string          `gorm:"type:uuid;not null"`
	Quantity     int             `gorm:"not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RefundAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * UnitPrice
	Reason       string          `gorm:"type:varchar(500)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (ReturnItem) TableName() string {
	return "return_items"
}

// Return represents a customer return request against a delivered order
// It is the aggregate root for the return workflow
type Return struct {
	shared.BaseAggregateRoot
	ReturnNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID      string          `gorm:"type:uuid;not null;index"`
	Status       ReturnStatus    `gorm:"type:varchar(20);not null;default:'pending'"`
	RefundTotal  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reason       string          `gorm:"type:varchar(500)"`

	Items []ReturnItem `gorm:"foreignKey:ReturnID;references:ID"`

	ReceivedDate *time.Time
	ProcessedAt  *time.Time
	ProcessedBy  string `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (Return) TableName() string {
	return "returns"
}

// NewReturn creates a pending return request for an order
func NewReturn(returnNumber, orderID, reason string) (*Return, error) {
	if returnNumber == "" {
		return nil, shared.NewDomainError("INVALID_RETURN_NUMBER", "Return number is required")
	}
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}

	ret := &Return{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReturnNumber:      returnNumber,
		OrderID:           orderID,
		Status:            ReturnStatusPending,
		RefundTotal:       decimal.Zero,
		Reason:            reason,
		Items:             make([]ReturnItem, 0),
	}

	ret.AddDomainEvent(NewReturnCreatedEvent(ret))

	return ret, nil
}

// AddItem appends a returned product. The refund amount is derived from the
// unit price the customer originally paid.
func (r *Return) AddItem(productID string, quantity int, unitPrice decimal.Decimal, reason string) error {
	if r.Status != ReturnStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to a pending return")
	}
	if productID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID is required")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	r.Items = append(r.Items, ReturnItem{
		ID:           uuid.New().String(),
		ReturnID:     r.ID,
		ProductID:    productID,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		RefundAmount: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Reason:       reason,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	r.recalculateRefund()
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Approve accepts the return and records the goods as received
func (r *Return) Approve() error {
	if r.Status != ReturnStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot approve return in %s status", r.Status))
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot approve return without items")
	}

	now := time.Now()
	r.Status = ReturnStatusApproved
	r.ReceivedDate = &now
	r.UpdatedAt = now
	r.IncrementVersion()

	return nil
}

// Reject declines the return request
func (r *Return) Reject() error {
	if r.Status != ReturnStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot reject return in %s status", r.Status))
	}

	r.Status = ReturnStatusRejected
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Process completes an approved return after the goods have been restocked
func (r *Return) Process(processedBy string) error {
	if r.Status != ReturnStatusApproved {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot process return in %s status", r.Status))
	}

	now := time.Now()
	r.Status = ReturnStatusProcessed
	r.ProcessedAt = &now
	r.ProcessedBy = processedBy
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewReturnProcessedEvent(r))

	return nil
}

// TotalQuantity returns the total units coming back across all items
func (r *Return) TotalQuantity() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}
	return total
}

func (r *Return) recalculateRefund() {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.RefundAmount)
	}
	r.RefundTotal = total
}
