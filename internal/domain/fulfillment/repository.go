package fulfillment

import (
	"context"

	"github.com/scm/backend/internal/domain/shared"
)

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	// FindByID finds a shipment by its ID
	FindByID(ctx context.Context, id string) (*Shipment, error)

	// FindByOrder finds all shipments for a sales order
	FindByOrder(ctx context.Context, orderID string) ([]Shipment, error)

	// FindAll finds shipments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)

	// Save creates or updates a shipment
	Save(ctx context.Context, shipment *Shipment) error

	// Count counts shipments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextShipmentNumber generates a unique tracking document number
	NextShipmentNumber(ctx context.Context) (string, error)
}

// ReturnRepository defines the interface for return persistence
type ReturnRepository interface {
	// FindByID finds a return with its items
	FindByID(ctx context.Context, id string) (*Return, error)

	// FindByOrder finds all returns for a sales order
	FindByOrder(ctx context.Context, orderID string) ([]Return, error)

	// FindAll finds returns matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Return, error)

	// Save creates or updates a return with its items
	Save(ctx context.Context, ret *Return) error

	// Count counts returns matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// NextReturnNumber generates a unique return document number
	NextReturnNumber(ctx context.Context) (string, error)
}
