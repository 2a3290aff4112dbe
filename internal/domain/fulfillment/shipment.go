package fulfillment

import (
	"fmt"
	"time"

	"github.com/scm/backend/internal/domain/shared"
)

// ShipmentStatus represents the progress of a shipment
type ShipmentStatus string

const (
	ShipmentStatusPending   ShipmentStatus = "pending"
	ShipmentStatusPicked    ShipmentStatus = "picked"
	ShipmentStatusPacked    ShipmentStatus = "packed"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
	ShipmentStatusCancelled ShipmentStatus = "cancelled"
)

// CanTransitionTo checks if the status can transition to the target status.
// Shipments only move forward; cancelled is reachable from any non-terminal
// state.
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	switch s {
	case ShipmentStatusPending:
		return target == ShipmentStatusPicked || target == ShipmentStatusCancelled
	case ShipmentStatusPicked:
		return target == ShipmentStatusPacked || target == ShipmentStatusCancelled
	case ShipmentStatusPacked:
		return target == ShipmentStatusInTransit || target == ShipmentStatusCancelled
	case ShipmentStatusInTransit:
		return target == ShipmentStatusDelivered || target == ShipmentStatusCancelled
	case ShipmentStatusDelivered, ShipmentStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Shipment represents the physical dispatch of a sales order.
// The origin warehouse is where picking happens.
type Shipment struct {
	shared.BaseAggregateRoot
	ShipmentNumber         string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID                string         `gorm:"type:uuid;not null;index"`
	OriginWarehouseID      string         `gorm:"type:uuid;not null"`
	DestinationWarehouseID string         `gorm:"type:uuid"`
	Carrier                string         `gorm:"type:varchar(100)"`
	TrackingURL            string         `gorm:"type:varchar(500)"`
	Status                 ShipmentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Notes                  string         `gorm:"type:text"`

	ShippedDate   *time.Time
	DeliveredDate *time.Time
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a pending shipment for an order
func NewShipment(shipmentNumber, orderID, originWarehouseID string) (*Shipment, error) {
	if shipmentNumber == "" {
		return nil, shared.NewDomainError("INVALID_SHIPMENT_NUMBER", "Shipment number is required")
	}
	if orderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID is required")
	}
	if originWarehouseID == "" {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Origin warehouse ID is required")
	}

	shipment := &Shipment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ShipmentNumber:    shipmentNumber,
		OrderID:           orderID,
		OriginWarehouseID: originWarehouseID,
		Status:            ShipmentStatusPending,
	}

	shipment.AddDomainEvent(NewShipmentCreatedEvent(shipment))

	return shipment, nil
}

// SetCarrier records the carrier and optional tracking link
func (s *Shipment) SetCarrier(carrier, trackingURL string) {
	s.Carrier = carrier
	s.TrackingURL = trackingURL
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// TransitionTo advances the shipment, stamping dates as milestones pass
func (s *Shipment) TransitionTo(target ShipmentStatus) error {
	switch target {
	case ShipmentStatusPending, ShipmentStatusPicked, ShipmentStatusPacked,
		ShipmentStatusInTransit, ShipmentStatusDelivered, ShipmentStatusCancelled:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown shipment status: "+string(target))
	}
	if !s.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition shipment from %s to %s", s.Status, target))
	}

	now := time.Now()
	s.Status = target
	switch target {
	case ShipmentStatusInTransit:
		s.ShippedDate = &now
	case ShipmentStatusDelivered:
		s.DeliveredDate = &now
	}
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewShipmentStatusChangedEvent(s))

	return nil
}
