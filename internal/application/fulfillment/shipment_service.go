package fulfillment

import (
	"context"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/domain/trade"
)

// ShipmentService drives the shipment workflow. Picking is where reserved
// stock physically leaves the warehouse, so status transitions and their
// inventory side effects commit in one transaction.
type ShipmentService struct {
	shipmentRepo   fulfillment.ShipmentRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(shipmentRepo fulfillment.ShipmentRepository, txScope TransactionScope) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		txScope:      txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ShipmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a pending shipment for a confirmed or processing order.
// Split orders ship from several warehouses, so a processing order can still
// open follow-up shipments for its remaining allocations. The origin defaults
// to the primary allocated warehouse of the first order item; requests may
// name any warehouse that holds an allocation share for the order.
func (s *ShipmentService) Create(ctx context.Context, req CreateShipmentRequest) (*ShipmentResponse, error) {
	var shipment *fulfillment.Shipment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.SalesOrderRepo().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if order.Status != trade.OrderStatusConfirmed && order.Status != trade.OrderStatusProcessing {
			return shared.NewDomainError("INVALID_STATE",
				"Shipments can only be created for confirmed or processing orders, order is "+string(order.Status))
		}

		origin := req.OriginWarehouseID
		if origin == "" {
			if len(order.Items) == 0 || order.Items[0].AllocatedWarehouseID == "" {
				return shared.NewDomainError("NO_WAREHOUSE", "Order has no allocated warehouse to ship from")
			}
			origin = order.Items[0].AllocatedWarehouseID
		} else if !order.HasAllocationAt(origin) {
			return shared.NewDomainError("NO_WAREHOUSE",
				"Order holds no allocation at warehouse "+origin)
		}

		shipmentNumber, err := repos.ShipmentRepo().NextShipmentNumber(ctx)
		if err != nil {
			return err
		}

		shipment, err = fulfillment.NewShipment(shipmentNumber, order.ID, origin)
		if err != nil {
			return err
		}
		shipment.DestinationWarehouseID = req.DestinationWarehouseID
		shipment.Notes = req.Notes
		if req.Carrier != "" || req.TrackingURL != "" {
			shipment.SetCarrier(req.Carrier, req.TrackingURL)
		}

		return repos.ShipmentRepo().Save(ctx, shipment)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, shipment)
	result := ToShipmentResponse(shipment)
	return &result, nil
}

// UpdateStatus advances the shipment state machine and applies the inventory
// and order side effects of the transition in the same transaction:
// picked consumes the reservations at the origin warehouse, in_transit marks
// the order shipped, delivered closes the order.
func (s *ShipmentService) UpdateStatus(ctx context.Context, shipmentID string, req UpdateShipmentStatusRequest) (*ShipmentResponse, error) {
	var shipment *fulfillment.Shipment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		shipment, err = repos.ShipmentRepo().FindByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		if req.Carrier != "" || req.TrackingURL != "" {
			shipment.SetCarrier(req.Carrier, req.TrackingURL)
		}

		if err := shipment.TransitionTo(req.Status); err != nil {
			return err
		}

		switch req.Status {
		case fulfillment.ShipmentStatusPicked:
			if err := s.consumeReservations(ctx, repos, shipment); err != nil {
				return err
			}
			if err := s.advanceOrder(ctx, repos, shipment.OrderID, trade.OrderStatusProcessing); err != nil {
				return err
			}
		case fulfillment.ShipmentStatusInTransit:
			if err := s.advanceOrder(ctx, repos, shipment.OrderID, trade.OrderStatusShipped); err != nil {
				return err
			}
		case fulfillment.ShipmentStatusDelivered:
			if err := s.advanceOrder(ctx, repos, shipment.OrderID, trade.OrderStatusDelivered); err != nil {
				return err
			}
		}

		return repos.ShipmentRepo().Save(ctx, shipment)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, shipment)
	result := ToShipmentResponse(shipment)
	return &result, nil
}

// Get returns a shipment by ID
func (s *ShipmentService) Get(ctx context.Context, shipmentID string) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	response := ToShipmentResponse(shipment)
	return &response, nil
}

// ListByOrder returns all shipments for a sales order
func (s *ShipmentService) ListByOrder(ctx context.Context, orderID string) ([]ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToShipmentResponses(shipments), nil
}

// List returns shipments matching the filter
func (s *ShipmentService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[ShipmentResponse], error) {
	shipments, err := s.shipmentRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ShipmentResponse]{}, err
	}
	total, err := s.shipmentRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ShipmentResponse]{}, err
	}
	return shared.NewPaginated(ToShipmentResponses(shipments), total, filter.Page, filter.PageSize), nil
}

// consumeReservations turns the reservations held at the shipment's origin
// warehouse into physical decrements and marks the shares consumed, so a
// later cancellation or a second pick cannot touch the same stock twice.
// Allocations at other warehouses belong to other shipments and are left
// untouched.
func (s *ShipmentService) consumeReservations(ctx context.Context, repos TransactionalRepositories, shipment *fulfillment.Shipment) error {
	order, err := repos.SalesOrderRepo().FindByID(ctx, shipment.OrderID)
	if err != nil {
		return err
	}

	touched := false
	for i := range order.Items {
		item := &order.Items[i]
		for j := range item.Allocations {
			alloc := &item.Allocations[j]
			if alloc.WarehouseID != shipment.OriginWarehouseID || alloc.Consumed {
				continue
			}
			record, err := repos.InventoryRepo().FindByProductAndWarehouse(ctx, item.ProductID, alloc.WarehouseID)
			if err != nil {
				return err
			}
			if err := record.Decrease(alloc.Quantity); err != nil {
				return err
			}
			if err := repos.InventoryRepo().Save(ctx, record); err != nil {
				return err
			}
			alloc.Consumed = true
			touched = true
		}
	}
	if !touched {
		return nil
	}

	return repos.SalesOrderRepo().Save(ctx, order)
}

// advanceOrder moves the sales order toward target when the transition is
// valid from its current status. Split orders have several shipments racing
// to advance the same order, so an already-advanced order is left alone.
func (s *ShipmentService) advanceOrder(ctx context.Context, repos TransactionalRepositories, orderID string, target trade.OrderStatus) error {
	order, err := repos.SalesOrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !order.Status.CanTransitionTo(target) {
		return nil
	}

	var transition error
	switch target {
	case trade.OrderStatusProcessing:
		transition = order.MarkProcessing()
	case trade.OrderStatusShipped:
		transition = order.MarkShipped()
	case trade.OrderStatusDelivered:
		transition = order.MarkDelivered()
	}
	if transition != nil {
		return transition
	}
	return repos.SalesOrderRepo().Save(ctx, order)
}

func (s *ShipmentService) publishEvents(ctx context.Context, shipment *fulfillment.Shipment) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range shipment.GetDomainEvents() {
		// Event handling is asynchronous; a failed publish must not fail the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	shipment.ClearDomainEvents()
}
