package trade

import (
	"context"
	"fmt"

	"github.com/scm/backend/internal/domain/catalog"
	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/partner"
	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/domain/trade"
)

// fakeSalesOrderRepo is a map-backed SalesOrderRepository for service tests
type fakeSalesOrderRepo struct {
	orders map[string]*trade.SalesOrder
	seq    int
}

func newFakeSalesOrderRepo() *fakeSalesOrderRepo {
	return &fakeSalesOrderRepo{orders: make(map[string]*trade.SalesOrder)}
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
	r.orders[order.ID] = order
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

// fakePurchaseOrderRepo is a map-backed PurchaseOrderRepository for service tests
type fakePurchaseOrderRepo struct {
	orders map[string]*trade.PurchaseOrder
	seq    int
}

func newFakePurchaseOrderRepo() *fakePurchaseOrderRepo {
	return &fakePurchaseOrderRepo{orders: make(map[string]*trade.PurchaseOrder)}
}

func (r *fakePurchaseOrderRepo) FindByID(_ context.Context, id string) (*trade.PurchaseOrder, error) {
	if po, ok := r.orders[id]; ok {
		return po, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePurchaseOrderRepo) FindByPONumber(_ context.Context, poNumber string) (*trade.PurchaseOrder, error) {
	for _, po := range r.orders {
		if po.PONumber == poNumber {
			return po, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePurchaseOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]trade.PurchaseOrder, error) {
	result := make([]trade.PurchaseOrder, 0, len(r.orders))
	for _, po := range r.orders {
		result = append(result, *po)
	}
	return result, nil
}

func (r *fakePurchaseOrderRepo) Save(_ context.Context, po *trade.PurchaseOrder) error {
	r.orders[po.ID] = po
	return nil
}

func (r *fakePurchaseOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *fakePurchaseOrderRepo) NextPONumber(_ context.Context) (string, error) {
	r.seq++
	return fmt.Sprintf("PO-TEST-%d", r.seq), nil
}

var _ trade.PurchaseOrderRepository = (*fakePurchaseOrderRepo)(nil)

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

func (r *fakeInventoryRepo) put(item *inventory.InventoryItem) {
	r.items[r.key(item.ProductID, item.WarehouseID)] = item
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
	r.put(item)
	return nil
}

func (r *fakeInventoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.items)), nil
}

var _ inventory.InventoryItemRepository = (*fakeInventoryRepo)(nil)

// fakeProductRepo is a map-backed ProductRepository for service tests
type fakeProductRepo struct {
	products map[string]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*catalog.Product)}
}

func (r *fakeProductRepo) put(product *catalog.Product) {
	r.products[product.ID] = product
}

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*catalog.Product, error) {
	if product, ok := r.products[id]; ok {
		return product, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	for _, product := range r.products {
		if product.SKU == sku {
			return product, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, *product)
	}
	return result, nil
}

func (r *fakeProductRepo) FindByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *fakeProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.put(product)
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	_, err := r.FindBySKU(ctx, sku)
	return err == nil, nil
}

var _ catalog.ProductRepository = (*fakeProductRepo)(nil)

// fakeSupplierRepo is a map-backed SupplierRepository for service tests
type fakeSupplierRepo struct {
	suppliers map[string]*partner.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: make(map[string]*partner.Supplier)}
}

func (r *fakeSupplierRepo) put(supplier *partner.Supplier) {
	r.suppliers[supplier.ID] = supplier
}

func (r *fakeSupplierRepo) FindByID(_ context.Context, id string) (*partner.Supplier, error) {
	if supplier, ok := r.suppliers[id]; ok {
		return supplier, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplierRepo) FindByCode(_ context.Context, code string) (*partner.Supplier, error) {
	for _, supplier := range r.suppliers {
		if supplier.Code == code {
			return supplier, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeSupplierRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Supplier, error) {
	result := make([]partner.Supplier, 0, len(r.suppliers))
	for _, supplier := range r.suppliers {
		result = append(result, *supplier)
	}
	return result, nil
}

func (r *fakeSupplierRepo) Save(_ context.Context, supplier *partner.Supplier) error {
	r.put(supplier)
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id string) error {
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.suppliers)), nil
}

var _ partner.SupplierRepository = (*fakeSupplierRepo)(nil)

// fakeWarehouseRepo is a map-backed WarehouseRepository for service tests
type fakeWarehouseRepo struct {
	warehouses map[string]*partner.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: make(map[string]*partner.Warehouse)}
}

func (r *fakeWarehouseRepo) put(warehouse *partner.Warehouse) {
	r.warehouses[warehouse.ID] = warehouse
}

func (r *fakeWarehouseRepo) FindByID(_ context.Context, id string) (*partner.Warehouse, error) {
	if warehouse, ok := r.warehouses[id]; ok {
		return warehouse, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeWarehouseRepo) FindByCode(_ context.Context, code string) (*partner.Warehouse, error) {
	for _, warehouse := range r.warehouses {
		if warehouse.Code == code {
			return warehouse, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeWarehouseRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Warehouse, error) {
	result := make([]partner.Warehouse, 0, len(r.warehouses))
	for _, warehouse := range r.warehouses {
		result = append(result, *warehouse)
	}
	return result, nil
}

func (r *fakeWarehouseRepo) FindActive(_ context.Context) ([]partner.Warehouse, error) {
	var result []partner.Warehouse
	for _, warehouse := range r.warehouses {
		if warehouse.IsActive() {
			result = append(result, *warehouse)
		}
	}
	return result, nil
}

func (r *fakeWarehouseRepo) Save(_ context.Context, warehouse *partner.Warehouse) error {
	r.put(warehouse)
	return nil
}

func (r *fakeWarehouseRepo) Delete(_ context.Context, id string) error {
	delete(r.warehouses, id)
	return nil
}

func (r *fakeWarehouseRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.warehouses)), nil
}

var _ partner.WarehouseRepository = (*fakeWarehouseRepo)(nil)

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
