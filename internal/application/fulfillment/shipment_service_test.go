package fulfillment

import (
	"context"
	"testing"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fulfillmentFixture struct {
	shipmentRepo  *fakeShipmentRepo
	returnRepo    *fakeReturnRepo
	orderRepo     *fakeSalesOrderRepo
	inventoryRepo *fakeInventoryRepo
	scope         *NoOpTransactionScope
}

func newFulfillmentFixture() *fulfillmentFixture {
	f := &fulfillmentFixture{
		shipmentRepo:  newFakeShipmentRepo(),
		returnRepo:    newFakeReturnRepo(),
		orderRepo:     newFakeSalesOrderRepo(),
		inventoryRepo: newFakeInventoryRepo(),
	}
	f.scope = NewNoOpTransactionScope(f.shipmentRepo, f.returnRepo, f.orderRepo, f.inventoryRepo)
	return f
}

// confirmedOrder builds a confirmed order with reserved stock behind every
// allocation share.
func (f *fulfillmentFixture) confirmedOrder(t *testing.T, productID string, quantity int, shares []trade.AllocationShare) *trade.SalesOrder {
	t.Helper()
	order, err := trade.NewSalesOrder("SO-1", "cust-1", "Customer")
	require.NoError(t, err)
	require.NoError(t, order.AddAllocatedItem(productID, "Product", "SKU-001", quantity, decimal.NewFromInt(20), shares))
	require.NoError(t, order.Confirm())
	order.ClearDomainEvents()
	f.orderRepo.put(order)

	for _, share := range shares {
		item, err := f.inventoryRepo.GetOrCreate(context.Background(), productID, share.WarehouseID)
		require.NoError(t, err)
		require.NoError(t, item.Increase(share.Quantity, "", nil))
		require.NoError(t, item.Reserve(share.Quantity))
		item.ClearDomainEvents()
	}

	return order
}

func newShipmentSvc(f *fulfillmentFixture) *ShipmentService {
	return NewShipmentService(f.shipmentRepo, f.scope)
}

func TestShipmentServiceCreate(t *testing.T) {
	t.Run("creates pending shipment from primary warehouse", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		service := newShipmentSvc(f)
		resp, err := service.Create(context.Background(), CreateShipmentRequest{
			OrderID: order.ID,
			Carrier: "DHL",
		})
		require.NoError(t, err)
		assert.Equal(t, fulfillment.ShipmentStatusPending, resp.Status)
		assert.Equal(t, "wh-a", resp.OriginWarehouseID)
		assert.Equal(t, "DHL", resp.Carrier)
		assert.Equal(t, "TRK-TEST-1", resp.ShipmentNumber)
	})

	t.Run("honors a requested origin that holds an allocation", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 12, []trade.AllocationShare{
			{WarehouseID: "wh-a", Quantity: 10},
			{WarehouseID: "wh-b", Quantity: 2},
		})

		service := newShipmentSvc(f)
		resp, err := service.Create(context.Background(), CreateShipmentRequest{
			OrderID:           order.ID,
			OriginWarehouseID: "wh-b",
		})
		require.NoError(t, err)
		assert.Equal(t, "wh-b", resp.OriginWarehouseID)
	})

	t.Run("rejects origin without an allocation", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		service := newShipmentSvc(f)
		_, err := service.Create(context.Background(), CreateShipmentRequest{
			OrderID:           order.ID,
			OriginWarehouseID: "wh-z",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no allocation")
	})

	t.Run("rejects order still pending confirmation", func(t *testing.T) {
		f := newFulfillmentFixture()
		order, err := trade.NewSalesOrder("SO-1", "cust-1", "Customer")
		require.NoError(t, err)
		f.orderRepo.put(order)

		service := newShipmentSvc(f)
		_, err = service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.Error(t, err)
	})

	t.Run("rejects unknown order", func(t *testing.T) {
		f := newFulfillmentFixture()
		service := newShipmentSvc(f)

		_, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: "missing"})
		require.Error(t, err)
	})
}

func TestShipmentServiceUpdateStatus(t *testing.T) {
	t.Run("picked consumes reservations and starts processing", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		service := newShipmentSvc(f)
		created, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)

		resp, err := service.UpdateStatus(context.Background(), created.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusPicked,
		})
		require.NoError(t, err)
		assert.Equal(t, fulfillment.ShipmentStatusPicked, resp.Status)

		item, err := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-a")
		require.NoError(t, err)
		assert.Equal(t, 0, item.Quantity)
		assert.Equal(t, 0, item.ReservedQuantity)

		stored, err := f.orderRepo.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, trade.OrderStatusProcessing, stored.Status)
	})

	t.Run("picked leaves other warehouses untouched", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 12, []trade.AllocationShare{
			{WarehouseID: "wh-a", Quantity: 10},
			{WarehouseID: "wh-b", Quantity: 2},
		})

		service := newShipmentSvc(f)
		created, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)
		assert.Equal(t, "wh-a", created.OriginWarehouseID)

		_, err = service.UpdateStatus(context.Background(), created.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusPicked,
		})
		require.NoError(t, err)

		itemA, _ := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-a")
		itemB, _ := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-b")
		assert.Equal(t, 0, itemA.Quantity)
		assert.Equal(t, 2, itemB.Quantity)
		assert.Equal(t, 2, itemB.ReservedQuantity)
	})

	t.Run("split order ships its second warehouse after processing starts", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 12, []trade.AllocationShare{
			{WarehouseID: "wh-a", Quantity: 10},
			{WarehouseID: "wh-b", Quantity: 2},
		})

		service := newShipmentSvc(f)
		first, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)
		_, err = service.UpdateStatus(context.Background(), first.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusPicked,
		})
		require.NoError(t, err)

		stored, err := f.orderRepo.FindByID(context.Background(), order.ID)
		require.NoError(t, err)
		require.Equal(t, trade.OrderStatusProcessing, stored.Status)

		// The order is already processing; the remaining warehouse must still
		// be able to ship its share
		second, err := service.Create(context.Background(), CreateShipmentRequest{
			OrderID:           order.ID,
			OriginWarehouseID: "wh-b",
		})
		require.NoError(t, err)
		assert.Equal(t, "wh-b", second.OriginWarehouseID)

		_, err = service.UpdateStatus(context.Background(), second.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusPicked,
		})
		require.NoError(t, err)

		itemB, err := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-b")
		require.NoError(t, err)
		assert.Equal(t, 0, itemB.Quantity)
		assert.Equal(t, 0, itemB.ReservedQuantity)
	})

	t.Run("second pick at the same origin does not decrement twice", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})
		item, err := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-a")
		require.NoError(t, err)
		require.NoError(t, item.Increase(5, "", nil))

		service := newShipmentSvc(f)
		first, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)
		_, err = service.UpdateStatus(context.Background(), first.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusPicked,
		})
		require.NoError(t, err)

		second, err := service.Create(context.Background(), CreateShipmentRequest{
			OrderID:           order.ID,
			OriginWarehouseID: "wh-a",
		})
		require.NoError(t, err)
		_, err = service.UpdateStatus(context.Background(), second.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusPicked,
		})
		require.NoError(t, err)

		item, err = f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-a")
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("full walk ships and delivers the order", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		service := newShipmentSvc(f)
		created, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)

		for _, status := range []fulfillment.ShipmentStatus{
			fulfillment.ShipmentStatusPicked,
			fulfillment.ShipmentStatusPacked,
		} {
			_, err = service.UpdateStatus(context.Background(), created.ID, UpdateShipmentStatusRequest{Status: status})
			require.NoError(t, err)
		}

		inTransit, err := service.UpdateStatus(context.Background(), created.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusInTransit,
		})
		require.NoError(t, err)
		assert.NotNil(t, inTransit.ShippedDate)

		stored, _ := f.orderRepo.FindByID(context.Background(), order.ID)
		assert.Equal(t, trade.OrderStatusShipped, stored.Status)

		delivered, err := service.UpdateStatus(context.Background(), created.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusDelivered,
		})
		require.NoError(t, err)
		assert.NotNil(t, delivered.DeliveredDate)

		stored, _ = f.orderRepo.FindByID(context.Background(), order.ID)
		assert.Equal(t, trade.OrderStatusDelivered, stored.Status)
		assert.NotNil(t, stored.DeliveredAt)
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		service := newShipmentSvc(f)
		created, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)

		_, err = service.UpdateStatus(context.Background(), created.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusInTransit,
		})
		require.Error(t, err)
	})

	t.Run("cancel before picking leaves inventory alone", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		service := newShipmentSvc(f)
		created, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)

		resp, err := service.UpdateStatus(context.Background(), created.ID, UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusCancelled,
		})
		require.NoError(t, err)
		assert.Equal(t, fulfillment.ShipmentStatusCancelled, resp.Status)

		item, _ := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-a")
		assert.Equal(t, 10, item.Quantity)
		assert.Equal(t, 10, item.ReservedQuantity)
	})

	t.Run("unknown shipment", func(t *testing.T) {
		f := newFulfillmentFixture()
		service := newShipmentSvc(f)

		_, err := service.UpdateStatus(context.Background(), "missing", UpdateShipmentStatusRequest{
			Status: fulfillment.ShipmentStatusPicked,
		})
		require.Error(t, err)
	})
}

func TestShipmentServiceEvents(t *testing.T) {
	t.Run("publishes after the transaction commits", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		publisher := &capturingPublisher{}
		service := newShipmentSvc(f)
		service.SetEventPublisher(publisher)

		_, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.NoError(t, err)
		assert.Contains(t, publisher.eventTypes(), fulfillment.EventTypeShipmentCreated)
	})

	t.Run("publishes nothing when the transaction fails", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		publisher := &capturingPublisher{}
		service := NewShipmentService(f.shipmentRepo, &commitFailScope{inner: f.scope})
		service.SetEventPublisher(publisher)

		_, err := service.Create(context.Background(), CreateShipmentRequest{OrderID: order.ID})
		require.Error(t, err)
		assert.Empty(t, publisher.events)
	})
}
