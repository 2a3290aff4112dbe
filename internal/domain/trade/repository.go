package trade

import (
	"context"

	"github.com/scm/backend/internal/domain/shared"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order with its items and allocations
	FindByID(ctx context.Context, id string) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by its document number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindAll finds sales orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// Save creates or updates a sales order with its items
	Save(ctx context.Context, order *SalesOrder) error

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextOrderNumber generates a unique sales order document number
	NextOrderNumber(ctx context.Context) (string, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its items
	FindByID(ctx context.Context, id string) (*PurchaseOrder, error)

	// FindByPONumber finds a purchase order by its document number
	FindByPONumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates a purchase order with its items
	Save(ctx context.Context, po *PurchaseOrder) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextPONumber generates a unique purchase order document number
	NextPONumber(ctx context.Context) (string, error)
}
