package trade

import (
	"context"
	"errors"

	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/domain/trade"
)

// SalesOrderService handles the sales order workflow: creation with stock
// allocation, cancellation with reservation release, and queries.
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	txScope        TransactionScope
	allocator      *inventory.StockAllocationService
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	txScope TransactionScope,
	allocator *inventory.StockAllocationService,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo: orderRepo,
		txScope:   txScope,
		allocator: allocator,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a sales order and reserves stock for every line item in one
// transaction. Allocation is all-or-nothing: if any item cannot be covered,
// the whole order is rolled back and nothing stays reserved.
func (s *SalesOrderService) Create(ctx context.Context, req CreateSalesOrderRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		orderNumber, err := repos.SalesOrderRepo().NextOrderNumber(ctx)
		if err != nil {
			return err
		}

		order, err = trade.NewSalesOrder(orderNumber, req.CustomerID, req.CustomerName)
		if err != nil {
			return err
		}
		order.Notes = req.Notes

		for _, input := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, input.ProductID)
			if err != nil {
				return err
			}
			if !product.IsActive() {
				return shared.NewDomainError("PRODUCT_INACTIVE", "Product is not active: "+product.SKU)
			}

			records, err := repos.InventoryRepo().FindByProduct(ctx, input.ProductID)
			if err != nil {
				return err
			}
			items := make([]*inventory.InventoryItem, len(records))
			for i := range records {
				items[i] = &records[i]
			}

			allocations, err := s.allocator.Plan(inventory.AllocationRequest{
				Product:              product,
				Quantity:             input.Quantity,
				PreferredWarehouseID: input.PreferredWarehouseID,
			}, items)
			if err != nil {
				return err
			}
			if err := s.allocator.Apply(allocations, items); err != nil {
				return err
			}
			allocated := make(map[string]bool, len(allocations))
			for _, alloc := range allocations {
				allocated[alloc.WarehouseID] = true
			}
			for _, item := range items {
				if !allocated[item.WarehouseID] {
					continue
				}
				if err := repos.InventoryRepo().Save(ctx, item); err != nil {
					return err
				}
			}

			shares := make([]trade.AllocationShare, 0, len(allocations))
			for _, alloc := range allocations {
				shares = append(shares, trade.AllocationShare{
					WarehouseID: alloc.WarehouseID,
					Quantity:    alloc.Quantity,
				})
			}
			if err := order.AddAllocatedItem(product.ID, product.Name, product.SKU, input.Quantity, product.Price, shares); err != nil {
				return err
			}
		}

		if err := order.Confirm(); err != nil {
			return err
		}
		return repos.SalesOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	// Events reach the handlers only once the transaction has committed
	s.publishEvents(ctx, order)
	result := ToSalesOrderResponse(order)
	return &result, nil
}

// Cancel cancels an order and releases every reservation it still holds.
// Shares a shipment pick has already consumed no longer hold reserved stock,
// so those are skipped rather than released against someone else's reservation.
func (s *SalesOrderService) Cancel(ctx context.Context, orderID string, req CancelSalesOrderRequest) (*SalesOrderResponse, error) {
	var order *trade.SalesOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.SalesOrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.Cancel(req.Reason); err != nil {
			return err
		}

		for _, item := range order.Items {
			for _, alloc := range item.Allocations {
				if alloc.Consumed {
					continue
				}
				record, err := repos.InventoryRepo().FindByProductAndWarehouse(ctx, item.ProductID, alloc.WarehouseID)
				if err != nil {
					if errors.Is(err, shared.ErrNotFound) {
						continue
					}
					return err
				}
				if err := record.Release(alloc.Quantity); err != nil {
					return err
				}
				if err := repos.InventoryRepo().Save(ctx, record); err != nil {
					return err
				}
			}
		}

		return repos.SalesOrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	result := ToSalesOrderResponse(order)
	return &result, nil
}

// Get returns a sales order with its items
func (s *SalesOrderService) Get(ctx context.Context, orderID string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToSalesOrderResponse(order)
	return &response, nil
}

// List returns sales orders matching the filter
func (s *SalesOrderService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[SalesOrderResponse], error) {
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[SalesOrderResponse]{}, err
	}
	return shared.NewPaginated(ToSalesOrderResponses(orders), total, filter.Page, filter.PageSize), nil
}

func (s *SalesOrderService) publishEvents(ctx context.Context, order *trade.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		// Event handling is asynchronous; a failed publish must not fail the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	order.ClearDomainEvents()
}
