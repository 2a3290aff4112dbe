package fulfillment

import (
	"context"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories the
// fulfillment workflows touch. Picking consumes reservations and processing
// a return restocks goods; both must commit together with the parent order.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all fulfillment repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// ShipmentRepo returns the shipment repository scoped to the current transaction
	ShipmentRepo() fulfillment.ShipmentRepository
	// ReturnRepo returns the return repository scoped to the current transaction
	ReturnRepo() fulfillment.ReturnRepository
	// SalesOrderRepo returns the sales order repository scoped to the current transaction
	SalesOrderRepo() trade.SalesOrderRepository
	// InventoryRepo returns the inventory item repository scoped to the current transaction
	InventoryRepo() inventory.InventoryItemRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use transactions.
// This is useful for testing or when transaction support is not required.
type NoOpTransactionScope struct {
	shipmentRepo  fulfillment.ShipmentRepository
	returnRepo    fulfillment.ReturnRepository
	orderRepo     trade.SalesOrderRepository
	inventoryRepo inventory.InventoryItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	shipmentRepo fulfillment.ShipmentRepository,
	returnRepo fulfillment.ReturnRepository,
	orderRepo trade.SalesOrderRepository,
	inventoryRepo inventory.InventoryItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		shipmentRepo:  shipmentRepo,
		returnRepo:    returnRepo,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
	}
}

// Execute runs the function without a real transaction (for testing/compatibility).
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ShipmentRepo returns the shipment repository.
func (s *NoOpTransactionScope) ShipmentRepo() fulfillment.ShipmentRepository {
	return s.shipmentRepo
}

// ReturnRepo returns the return repository.
func (s *NoOpTransactionScope) ReturnRepo() fulfillment.ReturnRepository {
	return s.returnRepo
}

// SalesOrderRepo returns the sales order repository.
func (s *NoOpTransactionScope) SalesOrderRepo() trade.SalesOrderRepository {
	return s.orderRepo
}

// InventoryRepo returns the inventory item repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.InventoryItemRepository {
	return s.inventoryRepo
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
