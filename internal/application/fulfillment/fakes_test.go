package fulfillment

import (
	"context"
	"fmt"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/domain/trade"
)

// fakeShipmentRepo is a map-backed ShipmentRepository for service tests
type fakeShipmentRepo struct {
	shipments map[string]*fulfillment.Shipment
	seq       int
}

func newFakeShipmentRepo() *fakeShipmentRepo {
	return &fakeShipmentRepo{shipments: make(map[string]*fulfillment.Shipment)}
}

func (r *fakeShipmentRepo) FindByID(_ context.Context, id string) (*fulfillment.Shipment, error) {
	if shipment, ok := r.shipments[id]; ok {
		return shipment, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeShipmentRepo) FindByOrder(_ context.Context, orderID string) ([]fulfillment.Shipment, error) {
	var result []fulfillment.Shipment
	for _, shipment := range r.shipments {
		if shipment.OrderID == orderID {
			result = append(result, *shipment)
		}
	}
	return result, nil
}

func (r *fakeShipmentRepo) FindAll(_ context.Context, _ shared.Filter) ([]fulfillment.Shipment, error) {
	result := make([]fulfillment.Shipment, 0, len(r.shipments))
	for _, shipment := range r.shipments {
		result = append(result, *shipment)
	}
	return result, nil
}

func (r *fakeShipmentRepo) Save(_ context.Context, shipment *fulfillment.Shipment) error {
	r.shipments[shipment.ID] = shipment
	return nil
}

func (r *fakeShipmentRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.shipments)), nil
}

func (r *fakeShipmentRepo) NextShipmentNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("TRK-TEST-%d", r.seq), nil
}

var _ fulfillment.ShipmentRepository = (*fakeShipmentRepo)(nil)

// fakeReturnRepo is a map-backed ReturnRepository for service tests
type fakeReturnRepo struct {
	returns map[string]*fulfillment.Return
	seq     int
}

func newFakeReturnRepo() *fakeReturnRepo {
	return &fakeReturnRepo{returns: make(map[string]*fulfillment.Return)}
}

func (r *fakeReturnRepo) FindByID(_ context.Context, id string) (*fulfillment.Return, error) {
	if ret, ok := r.returns[id]; ok {
		return ret, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeReturnRepo) FindByOrder(_ context.Context, orderID string) ([]fulfillment.Return, error) {
	var result []fulfillment.Return
	for _, ret := range r.returns {
		if ret.OrderID == orderID {
			result = append(result, *ret)
		}
	}
	return result, nil
}

func (r *fakeReturnRepo) FindAll(_ context.Context, _ shared.Filter) ([]fulfillment.Return, error) {
	result := make([]fulfillment.Return, 0, len(r.returns))
	for _, ret := range r.returns {
		result = append(result, *ret)
	}
	return result, nil
}

func (r *fakeReturnRepo) Save(_ context.Context, ret *fulfillment.Return) error {
	r.returns[ret.ID] = ret
	return nil
}

func (r *fakeReturnRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.returns)), nil
}

func (r *fakeReturnRepo) NextReturnNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("RET-TEST-%d", r.seq), nil
}

var _ fulfillment.ReturnRepository = (*fakeReturnRepo)(nil)

// fakeSalesOrderRepo is a map-backed SalesOrderRepository for service tests
type fakeSalesOrderRepo struct {
	orders map[string]*trade.SalesOrder
	seq    int
}

func newFakeSalesOrderRepo() *fakeSalesOrderRepo {
	return &fakeSalesOrderRepo{orders: make(map[string]*trade.SalesOrder)}
}

func (r *fakeSalesOrderRepo) put(order *trade.SalesOrder) {
	r.orders[order.ID] = order
}

func (r *fakeSalesOrderRepo) FindByID(_ context.Context, id string) (*trade.SalesOrder, error) {
	if order, ok := r.orders[id]; ok {
		return order, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSalesOrderRepo) FindByOrderNumber(_ context.Context, orderNumber string) (*trade.SalesOrder, error) {
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSalesOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.SalesOrder, error) {
	result := make([]trade.SalesOrder, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *fakeSalesOrderRepo) Save(_ context.Context, order *trade.SalesOrder) error {
	r.put(order)
	return nil
}

func (r *fakeSalesOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakeSalesOrderRepo) NextOrderNumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("SO-TEST-%d", r.seq), nil
}

var _ trade.SalesOrderRepository = (*fakeSalesOrderRepo)(nil)

// fakeInventoryRepo is a map-backed InventoryItemRepository for service tests
type fakeInventoryRepo struct {
	items map[string]*inventory.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[string]*inventory.InventoryItem)}
}

func (r *fakeInventoryRepo) key(productID, warehouseID string) string {
	return productID + "/" + warehouseID
}

func (r *fakeInventoryRepo) FindByID(_ context.Context, id string) (*inventory.InventoryItem, error) {
	for _, item := range r.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInventoryRepo) FindByProductAndWarehouse(_ context.Context, productID, warehouseID string) (*inventory.InventoryItem, error) {
	if item, ok := r.items[r.key(productID, warehouseID)]; ok {
		return item, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeInventoryRepo) FindByProduct(_ context.Context, productID string) ([]inventory.InventoryItem, error) {
	var result []inventory.InventoryItem
	for _, item := range r.items {
		if item.ProductID == productID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeInventoryRepo) FindByWarehouse(_ context.Context, warehouseID string, _ shared.Filter) ([]inventory.InventoryItem, error) {
	var result []inventory.InventoryItem
	for _, item := range r.items {
		if item.WarehouseID == warehouseID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (r *fakeInventoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]inventory.InventoryItem, error) {
	result := make([]inventory.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		result = append(result, *item)
	}
	return result, nil
}

func (r *fakeInventoryRepo) GetOrCreate(_ context.Context, productID, warehouseID string) (*inventory.InventoryItem, error) {
	if item, ok := r.items[r.key(productID, warehouseID)]; ok {
		return item, nil
	}
	item, err := inventory.NewInventoryItem(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	r.items[r.key(productID, warehouseID)] = item
	return item, nil
}

func (r *fakeInventoryRepo) Save(_ context.Context, item *inventory.InventoryItem) error {
	r.items[r.key(item.ProductID, item.WarehouseID)] = item
	return nil
}

func (r *fakeInventoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

var _ inventory.InventoryItemRepository = (*fakeInventoryRepo)(nil)

// capturingPublisher records every published event
type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *capturingPublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, event := range p.events {
		types = append(types, event.EventType())
	}
	return types
}

var _ shared.EventPublisher = (*capturingPublisher)(nil)

// commitFailScope runs the closure and then fails the transaction, as a
// commit rejected by the database would
type commitFailScope struct {
	inner *NoOpTransactionScope
}

func (s *commitFailScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	if err := fn(s.inner); err != nil {
		return err
	}
	return fmt.Errorf("commit rejected")
}

var _ TransactionScope = (*commitFailScope)(nil)
