package inventory

import (
	"context"

	"github.com/scm/backend/internal/domain/catalog"
	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/shared"
)

// InventoryService handles stock level operations
type InventoryService struct {
	inventoryRepo  inventory.InventoryItemRepository
	productRepo    catalog.ProductRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	inventoryRepo inventory.InventoryItemRepository,
	productRepo catalog.ProductRepository,
	txScope TransactionScope,
) *InventoryService {
	return &InventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		txScope:       txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *InventoryService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// List returns inventory records matching the filter
func (s *InventoryService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[InventoryItemResponse], error) {
	items, err := s.inventoryRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[InventoryItemResponse]{}, err
	}
	total, err := s.inventoryRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[InventoryItemResponse]{}, err
	}
	return shared.NewPaginated(ToInventoryItemResponses(items), total, filter.Page, filter.PageSize), nil
}

// GetByProduct returns all inventory records for a product across warehouses
func (s *InventoryService) GetByProduct(ctx context.Context, productID string) ([]InventoryItemResponse, error) {
	items, err := s.inventoryRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return ToInventoryItemResponses(items), nil
}

// Increment adds physical stock at a warehouse, creating the record if needed
func (s *InventoryService) Increment(ctx context.Context, req AdjustStockRequest) (*InventoryItemResponse, error) {
	var item *inventory.InventoryItem
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.ProductRepo().FindByID(ctx, req.ProductID); err != nil {
			return err
		}
		if _, err := repos.WarehouseRepo().FindByID(ctx, req.WarehouseID); err != nil {
			return err
		}

		var err error
		item, err = repos.InventoryRepo().GetOrCreate(ctx, req.ProductID, req.WarehouseID)
		if err != nil {
			return err
		}
		if err := item.Increase(req.Quantity, req.BatchNumber, req.ExpiryDate); err != nil {
			return err
		}
		return repos.InventoryRepo().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	// Events reach the handlers only once the transaction has committed
	s.publishEvents(ctx, item)
	result := ToInventoryItemResponse(item)
	return &result, nil
}

// Decrement removes physical stock from a warehouse. When the product's total
// stock drops below its reorder threshold, a StockBelowThreshold event is
// published for the reorder suggestion handler.
func (s *InventoryService) Decrement(ctx context.Context, req AdjustStockRequest) (*InventoryItemResponse, error) {
	var item *inventory.InventoryItem
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = repos.InventoryRepo().FindByProductAndWarehouse(ctx, req.ProductID, req.WarehouseID)
		if err != nil {
			return err
		}
		if err := item.Decrease(req.Quantity); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, item); err != nil {
			return err
		}

		// The threshold check needs the transactional view of the ledger;
		// the event it queues is published with the rest after commit
		s.checkReorderThreshold(ctx, repos, item)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)
	result := ToInventoryItemResponse(item)
	return &result, nil
}

// Release returns reserved stock to the available pool
func (s *InventoryService) Release(ctx context.Context, req ReleaseStockRequest) (*InventoryItemResponse, error) {
	var item *inventory.InventoryItem
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		item, err = repos.InventoryRepo().FindByProductAndWarehouse(ctx, req.ProductID, req.WarehouseID)
		if err != nil {
			return err
		}
		if err := item.Release(req.Quantity); err != nil {
			return err
		}
		return repos.InventoryRepo().Save(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)
	result := ToInventoryItemResponse(item)
	return &result, nil
}

// checkReorderThreshold emits a StockBelowThreshold event when the product's
// stock across all warehouses has fallen under its reorder threshold.
func (s *InventoryService) checkReorderThreshold(ctx context.Context, repos TransactionalRepositories, item *inventory.InventoryItem) {
	product, err := repos.ProductRepo().FindByID(ctx, item.ProductID)
	if err != nil || product.ReorderThreshold <= 0 {
		return
	}

	records, err := repos.InventoryRepo().FindByProduct(ctx, item.ProductID)
	if err != nil {
		return
	}
	total := 0
	for _, record := range records {
		total += record.Quantity
	}
	if total < product.ReorderThreshold {
		item.AddDomainEvent(inventory.NewStockBelowThresholdEvent(item, product.ReorderThreshold, product.ReorderQuantity))
	}
}

func (s *InventoryService) publishEvents(ctx context.Context, item *inventory.InventoryItem) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range item.GetDomainEvents() {
		// Event handling is asynchronous; a failed publish must not fail the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	item.ClearDomainEvents()
}
