package fulfillment

import (
	"github.com/scm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeShipment = "Shipment"
	AggregateTypeReturn   = "Return"
)

// Event type constants
const (
	EventTypeShipmentCreated       = "ShipmentCreated"
	EventTypeShipmentStatusChanged = "ShipmentStatusChanged"
	EventTypeReturnCreated         = "ReturnCreated"
	EventTypeReturnProcessed       = "ReturnProcessed"
)

// ShipmentCreatedEvent is published when a shipment is created for an order
type ShipmentCreatedEvent struct {
	shared.BaseDomainEvent
	ShipmentID        string `json:"shipment_id"`
	ShipmentNumber    string `json:"shipment_number"`
	OrderID           string `json:"order_id"`
	OriginWarehouseID string `json:"origin_warehouse_id"`
}

// NewShipmentCreatedEvent creates a new ShipmentCreatedEvent
func NewShipmentCreatedEvent(shipment *Shipment) *ShipmentCreatedEvent {
	return &ShipmentCreatedEvent{
		BaseDomainEvent:   shared.NewBaseDomainEvent(EventTypeShipmentCreated, AggregateTypeShipment, shipment.ID),
		ShipmentID:        shipment.ID,
		ShipmentNumber:    shipment.ShipmentNumber,
		OrderID:           shipment.OrderID,
		OriginWarehouseID: shipment.OriginWarehouseID,
	}
}

// ShipmentStatusChangedEvent is published on every shipment transition
type ShipmentStatusChangedEvent struct {
	shared.BaseDomainEvent
	ShipmentID     string         `json:"shipment_id"`
	ShipmentNumber string         `json:"shipment_number"`
	OrderID        string         `json:"order_id"`
	Status         ShipmentStatus `json:"status"`
}

// NewShipmentStatusChangedEvent creates a new ShipmentStatusChangedEvent
func NewShipmentStatusChangedEvent(shipment *Shipment) *ShipmentStatusChangedEvent {
	return &ShipmentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentStatusChanged, AggregateTypeShipment, shipment.ID),
		ShipmentID:      shipment.ID,
		ShipmentNumber:  shipment.ShipmentNumber,
		OrderID:         shipment.OrderID,
		Status:          shipment.Status,
	}
}

// ReturnCreatedEvent is published when a return request is opened
type ReturnCreatedEvent struct {
	shared.BaseDomainEvent
	ReturnID     string `json:"return_id"`
	ReturnNumber string `json:"return_number"`
	OrderID      string `json:"order_id"`
}

// NewReturnCreatedEvent creates a new ReturnCreatedEvent
func NewReturnCreatedEvent(ret *Return) *ReturnCreatedEvent {
	return &ReturnCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnCreated, AggregateTypeReturn, ret.ID),
		ReturnID:        ret.ID,
		ReturnNumber:    ret.ReturnNumber,
		OrderID:         ret.OrderID,
	}
}

// ReturnProcessedEvent is published when returned goods are restocked
type ReturnProcessedEvent struct {
	shared.BaseDomainEvent
	ReturnID     string          `json:"return_id"`
	ReturnNumber string          `json:"return_number"`
	OrderID      string          `json:"order_id"`
	RefundTotal  decimal.Decimal `json:"refund_total"`
}

// NewReturnProcessedEvent creates a new ReturnProcessedEvent
func NewReturnProcessedEvent(ret *Return) *ReturnProcessedEvent {
	return &ReturnProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnProcessed, AggregateTypeReturn, ret.ID),
		ReturnID:        ret.ID,
		ReturnNumber:    ret.ReturnNumber,
		OrderID:         ret.OrderID,
		RefundTotal:     ret.RefundTotal,
	}
}
