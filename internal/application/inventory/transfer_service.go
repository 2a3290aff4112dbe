package inventory

import (
	"context"

	"github.com/scm/backend/internal/domain/shared"
)

// TransferResult reports both sides of a completed warehouse transfer
type TransferResult struct {
	Source      InventoryItemResponse `json:"source"`
	Destination InventoryItemResponse `json:"destination"`
}

// TransferService moves stock between warehouses atomically
type TransferService struct {
	txScope TransactionScope
}

// NewTransferService creates a new TransferService
func NewTransferService(txScope TransactionScope) *TransferService {
	return &TransferService{txScope: txScope}
}

// Transfer moves available stock from one warehouse to another in a single
// transaction. Reserved stock stays behind at the source; the destination
// record is created on first use.
func (s *TransferService) Transfer(ctx context.Context, req TransferStockRequest) (*TransferResult, error) {
	if req.SourceWarehouseID == req.DestWarehouseID {
		return nil, shared.NewDomainError("SAME_WAREHOUSE", "Source and destination warehouses must differ")
	}

	var result TransferResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		source, err := repos.InventoryRepo().FindByProductAndWarehouse(ctx, req.ProductID, req.SourceWarehouseID)
		if err != nil {
			return err
		}

		if _, err := repos.ProductRepo().FindByID(ctx, req.ProductID); err != nil {
			return err
		}
		if _, err := repos.WarehouseRepo().FindByID(ctx, req.DestWarehouseID); err != nil {
			return err
		}

		if err := source.TransferOut(req.Quantity); err != nil {
			return err
		}

		dest, err := repos.InventoryRepo().GetOrCreate(ctx, req.ProductID, req.DestWarehouseID)
		if err != nil {
			return err
		}
		if err := dest.Increase(req.Quantity, source.BatchNumber, source.ExpiryDate); err != nil {
			return err
		}

		if err := repos.InventoryRepo().Save(ctx, source); err != nil {
			return err
		}
		if err := repos.InventoryRepo().Save(ctx, dest); err != nil {
			return err
		}

		result = TransferResult{
			Source:      ToInventoryItemResponse(source),
			Destination: ToInventoryItemResponse(dest),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
