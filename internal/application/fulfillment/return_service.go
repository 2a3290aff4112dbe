package fulfillment

import (
	"context"
	"fmt"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/domain/trade"
)

// ReturnService handles the return workflow: opening a return against a
// delivered order, approval, and processing with restock.
type ReturnService struct {
	returnRepo     fulfillment.ReturnRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewReturnService creates a new ReturnService
func NewReturnService(returnRepo fulfillment.ReturnRepository, txScope TransactionScope) *ReturnService {
	return &ReturnService{
		returnRepo: returnRepo,
		txScope:    txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ReturnService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create opens a pending return against a delivered order. Each returned
// product must appear on the order and cannot exceed the ordered quantity;
// the refund is derived from the price the customer originally paid.
func (s *ReturnService) Create(ctx context.Context, req CreateReturnRequest) (*ReturnResponse, error) {
	var ret *fulfillment.Return
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.SalesOrderRepo().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}
		if order.Status != trade.OrderStatusDelivered && order.Status != trade.OrderStatusReturned {
			return shared.NewDomainError("INVALID_STATE",
				"Returns can only be created for delivered orders, order is "+string(order.Status))
		}

		returnNumber, err := repos.ReturnRepo().NextReturnNumber(ctx)
		if err != nil {
			return err
		}

		ret, err = fulfillment.NewReturn(returnNumber, order.ID, req.Reason)
		if err != nil {
			return err
		}

		for _, input := range req.Items {
			orderItem := findOrderItem(order, input.ProductID)
			if orderItem == nil {
				return shared.NewDomainError("ITEM_NOT_IN_ORDER",
					"Product was not part of the order: "+input.ProductID)
			}
			if input.Quantity > orderItem.Quantity {
				return shared.NewDomainError("EXCEEDS_ORDERED",
					fmt.Sprintf("Return quantity %d exceeds ordered quantity %d", input.Quantity, orderItem.Quantity))
			}
			if err := ret.AddItem(input.ProductID, input.Quantity, orderItem.UnitPrice, input.Reason); err != nil {
				return err
			}
		}

		return repos.ReturnRepo().Save(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ret)
	result := ToReturnResponse(ret)
	return &result, nil
}

// Approve accepts a pending return and records the goods as received
func (s *ReturnService) Approve(ctx context.Context, returnID string) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if err := ret.Approve(); err != nil {
		return nil, err
	}
	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}
	response := ToReturnResponse(ret)
	return &response, nil
}

// Reject declines a pending return
func (s *ReturnService) Reject(ctx context.Context, returnID string) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	if err := ret.Reject(); err != nil {
		return nil, err
	}
	if err := s.returnRepo.Save(ctx, ret); err != nil {
		return nil, err
	}
	response := ToReturnResponse(ret)
	return &response, nil
}

// Process completes an approved return: the goods go back on the shelf at the
// given warehouse and, once every ordered unit has come back across all
// processed returns, the parent order transitions to returned. Partial
// returns leave the order delivered.
func (s *ReturnService) Process(ctx context.Context, returnID string, req ProcessReturnRequest) (*ReturnResponse, error) {
	var ret *fulfillment.Return
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ret, err = repos.ReturnRepo().FindByID(ctx, returnID)
		if err != nil {
			return err
		}
		if err := ret.Process(req.ProcessedBy); err != nil {
			return err
		}

		for _, item := range ret.Items {
			// Batch and expiry of the original stock are unknown at this point
			record, err := repos.InventoryRepo().GetOrCreate(ctx, item.ProductID, req.WarehouseID)
			if err != nil {
				return err
			}
			if err := record.Increase(item.Quantity, "", nil); err != nil {
				return err
			}
			if err := repos.InventoryRepo().Save(ctx, record); err != nil {
				return err
			}
		}

		if err := repos.ReturnRepo().Save(ctx, ret); err != nil {
			return err
		}

		return s.closeOrderIfFullyReturned(ctx, repos, ret.OrderID)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ret)
	result := ToReturnResponse(ret)
	return &result, nil
}

// Get returns a return with its items
func (s *ReturnService) Get(ctx context.Context, returnID string) (*ReturnResponse, error) {
	ret, err := s.returnRepo.FindByID(ctx, returnID)
	if err != nil {
		return nil, err
	}
	response := ToReturnResponse(ret)
	return &response, nil
}

// ListByOrder returns all returns for a sales order
func (s *ReturnService) ListByOrder(ctx context.Context, orderID string) ([]ReturnResponse, error) {
	returns, err := s.returnRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToReturnResponses(returns), nil
}

// List returns returns matching the filter
func (s *ReturnService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[ReturnResponse], error) {
	returns, err := s.returnRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ReturnResponse]{}, err
	}
	total, err := s.returnRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ReturnResponse]{}, err
	}
	return shared.NewPaginated(ToReturnResponses(returns), total, filter.Page, filter.PageSize), nil
}

// closeOrderIfFullyReturned marks the order returned once the units across
// all processed returns cover everything that was ordered.
func (s *ReturnService) closeOrderIfFullyReturned(ctx context.Context, repos TransactionalRepositories, orderID string) error {
	order, err := repos.SalesOrderRepo().FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == trade.OrderStatusReturned {
		return nil
	}

	returns, err := repos.ReturnRepo().FindByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	processed := 0
	for i := range returns {
		if returns[i].Status == fulfillment.ReturnStatusProcessed {
			processed += returns[i].TotalQuantity()
		}
	}
	if processed < order.TotalQuantity() {
		return nil
	}

	if err := order.MarkReturned(); err != nil {
		return err
	}
	return repos.SalesOrderRepo().Save(ctx, order)
}

func findOrderItem(order *trade.SalesOrder, productID string) *trade.SalesOrderItem {
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			return &order.Items[i]
		}
	}
	return nil
}

func (s *ReturnService) publishEvents(ctx context.Context, ret *fulfillment.Return) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range ret.GetDomainEvents() {
		// Event handling is asynchronous; a failed publish must not fail the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	ret.ClearDomainEvents()
}
