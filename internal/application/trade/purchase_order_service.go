package trade

import (
	"context"

	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/domain/trade"
)

// PurchaseOrderService handles the purchase order workflow: creation,
// receiving with stock increments, and queries.
type PurchaseOrderService struct {
	poRepo         trade.PurchaseOrderRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(poRepo trade.PurchaseOrderRepository, txScope TransactionScope) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:  poRepo,
		txScope: txScope,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a purchase order against an active supplier
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var po *trade.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		supplier, err := repos.SupplierRepo().FindByID(ctx, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.IsActive() {
			return shared.NewDomainError("SUPPLIER_INACTIVE", "Supplier is not active: "+supplier.Code)
		}

		poNumber, err := repos.PurchaseOrderRepo().NextPONumber(ctx)
		if err != nil {
			return err
		}

		po, err = trade.NewPurchaseOrder(poNumber, supplier.ID, supplier.Name)
		if err != nil {
			return err
		}
		po.Notes = req.Notes
		if req.ExpectedDate != nil {
			po.SetExpectedDate(req.ExpectedDate)
		}

		for _, input := range req.Items {
			product, err := repos.ProductRepo().FindByID(ctx, input.ProductID)
			if err != nil {
				return err
			}
			if err := po.AddItem(product.ID, product.Name, input.Quantity, input.UnitCost); err != nil {
				return err
			}
		}

		return repos.PurchaseOrderRepo().Save(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, po)
	result := ToPurchaseOrderResponse(po)
	return &result, nil
}

// Receive records goods arriving at a warehouse against a purchase order.
// Stock increments and the document update commit in one transaction; any
// line that exceeds its outstanding quantity rolls back the whole pass.
func (s *PurchaseOrderService) Receive(ctx context.Context, poID string, req ReceivePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	var po *trade.PurchaseOrder
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		po, err = repos.PurchaseOrderRepo().FindByID(ctx, poID)
		if err != nil {
			return err
		}
		if _, err := repos.WarehouseRepo().FindByID(ctx, req.WarehouseID); err != nil {
			return err
		}

		for _, input := range req.Items {
			item, err := po.ReceiveItem(input.ItemID, input.Quantity)
			if err != nil {
				return err
			}

			record, err := repos.InventoryRepo().GetOrCreate(ctx, item.ProductID, req.WarehouseID)
			if err != nil {
				return err
			}
			if err := record.Increase(input.Quantity, input.BatchNumber, input.ExpiryDate); err != nil {
				return err
			}
			if err := repos.InventoryRepo().Save(ctx, record); err != nil {
				return err
			}
		}

		if err := po.FinalizeReceipt(); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Save(ctx, po)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, po)
	result := ToPurchaseOrderResponse(po)
	return &result, nil
}

// Approve approves a pending purchase order for placement with the supplier
func (s *PurchaseOrderService) Approve(ctx context.Context, poID string) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if err := po.Approve(); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// MarkOrdered records that an approved purchase order was placed with the supplier
func (s *PurchaseOrderService) MarkOrdered(ctx context.Context, poID string) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if err := po.MarkOrdered(); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// Cancel cancels a purchase order that has not started receiving
func (s *PurchaseOrderService) Cancel(ctx context.Context, poID string) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if err := po.Cancel(); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// Get returns a purchase order with its items
func (s *PurchaseOrderService) Get(ctx context.Context, poID string) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// List returns purchase orders matching the filter
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[PurchaseOrderResponse], error) {
	orders, err := s.poRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[PurchaseOrderResponse]{}, err
	}
	total, err := s.poRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[PurchaseOrderResponse]{}, err
	}
	return shared.NewPaginated(ToPurchaseOrderResponses(orders), total, filter.Page, filter.PageSize), nil
}

// AutoGenerate produces purchase order suggestions for products under their
// reorder threshold. Automatic generation is not wired to a policy yet, so
// the suggestion list is always empty; low-stock events carry the data a
// planner needs in the meantime.
func (s *PurchaseOrderService) AutoGenerate(ctx context.Context) ([]PurchaseOrderResponse, error) {
	return []PurchaseOrderResponse{}, nil
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, po *trade.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range po.GetDomainEvents() {
		// Event handling is asynchronous; a failed publish must not fail the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	po.ClearDomainEvents()
}
