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

// deliveredOrder builds an order that has gone through the full shipping path
func (f *fulfillmentFixture) deliveredOrder(t *testing.T, productID string, quantity int) *trade.SalesOrder {
	t.Helper()
	order := f.confirmedOrder(t, productID, quantity, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: quantity}})
	require.NoError(t, order.MarkShipped())
	require.NoError(t, order.MarkDelivered())
	order.ClearDomainEvents()
	return order
}

func newReturnSvc(f *fulfillmentFixture) *ReturnService {
	return NewReturnService(f.returnRepo, f.scope)
}

func TestReturnServiceCreate(t *testing.T) {
	t.Run("creates pending return with derived refund", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)

		service := newReturnSvc(f)
		resp, err := service.Create(context.Background(), CreateReturnRequest{
			OrderID: order.ID,
			Reason:  "damaged in transit",
			Items: []CreateReturnItemInput{
				{ProductID: "prod-1", Quantity: 4, Reason: "crushed box"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, fulfillment.ReturnStatusPending, resp.Status)
		assert.Equal(t, "RET-TEST-1", resp.ReturnNumber)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)))
		assert.True(t, resp.RefundTotal.Equal(decimal.NewFromInt(80)))
	})

	t.Run("rejects order that was not delivered", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.confirmedOrder(t, "prod-1", 10, []trade.AllocationShare{{WarehouseID: "wh-a", Quantity: 10}})

		service := newReturnSvc(f)
		_, err := service.Create(context.Background(), CreateReturnRequest{
			OrderID: order.ID,
			Items:   []CreateReturnItemInput{{ProductID: "prod-1", Quantity: 1}},
		})
		require.Error(t, err)
	})

	t.Run("rejects product not on the order", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)

		service := newReturnSvc(f)
		_, err := service.Create(context.Background(), CreateReturnRequest{
			OrderID: order.ID,
			Items:   []CreateReturnItemInput{{ProductID: "prod-other", Quantity: 1}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not part of the order")
	})

	t.Run("rejects quantity above ordered", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)

		service := newReturnSvc(f)
		_, err := service.Create(context.Background(), CreateReturnRequest{
			OrderID: order.ID,
			Items:   []CreateReturnItemInput{{ProductID: "prod-1", Quantity: 11}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds ordered")
	})
}

func TestReturnServiceWorkflow(t *testing.T) {
	createReturn := func(t *testing.T, f *fulfillmentFixture, service *ReturnService, orderID string, quantity int) *ReturnResponse {
		t.Helper()
		resp, err := service.Create(context.Background(), CreateReturnRequest{
			OrderID: orderID,
			Items:   []CreateReturnItemInput{{ProductID: "prod-1", Quantity: quantity}},
		})
		require.NoError(t, err)
		return resp
	}

	t.Run("approve stamps received date", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)
		service := newReturnSvc(f)
		created := createReturn(t, f, service, order.ID, 4)

		approved, err := service.Approve(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, fulfillment.ReturnStatusApproved, approved.Status)
		assert.NotNil(t, approved.ReceivedDate)
	})

	t.Run("reject closes the return", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)
		service := newReturnSvc(f)
		created := createReturn(t, f, service, order.ID, 4)

		rejected, err := service.Reject(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, fulfillment.ReturnStatusRejected, rejected.Status)

		_, err = service.Process(context.Background(), created.ID, ProcessReturnRequest{
			WarehouseID: "wh-a", ProcessedBy: "ops",
		})
		require.Error(t, err)
	})

	t.Run("process requires approval", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)
		service := newReturnSvc(f)
		created := createReturn(t, f, service, order.ID, 4)

		_, err := service.Process(context.Background(), created.ID, ProcessReturnRequest{
			WarehouseID: "wh-a", ProcessedBy: "ops",
		})
		require.Error(t, err)
	})

	t.Run("partial return restocks but leaves order delivered", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)
		service := newReturnSvc(f)
		created := createReturn(t, f, service, order.ID, 4)

		_, err := service.Approve(context.Background(), created.ID)
		require.NoError(t, err)

		processed, err := service.Process(context.Background(), created.ID, ProcessReturnRequest{
			WarehouseID: "wh-b", ProcessedBy: "ops",
		})
		require.NoError(t, err)
		assert.Equal(t, fulfillment.ReturnStatusProcessed, processed.Status)
		assert.Equal(t, "ops", processed.ProcessedBy)
		assert.NotNil(t, processed.ProcessedAt)

		restocked, err := f.inventoryRepo.FindByProductAndWarehouse(context.Background(), "prod-1", "wh-b")
		require.NoError(t, err)
		assert.Equal(t, 4, restocked.Quantity)

		stored, _ := f.orderRepo.FindByID(context.Background(), order.ID)
		assert.Equal(t, trade.OrderStatusDelivered, stored.Status)
	})

	t.Run("full return marks the order returned", func(t *testing.T) {
		f := newFulfillmentFixture()
		order := f.deliveredOrder(t, "prod-1", 10)
		service := newReturnSvc(f)

		first := createReturn(t, f, service, order.ID, 4)
		_, err := service.Approve(context.Background(), first.ID)
		require.NoError(t, err)
		_, err = service.Process(context.Background(), first.ID, ProcessReturnRequest{
			WarehouseID: "wh-a", ProcessedBy: "ops",
		})
		require.NoError(t, err)

		second := createReturn(t, f, service, order.ID, 6)
		_, err = service.Approve(context.Background(), second.ID)
		require.NoError(t, err)
		_, err = service.Process(context.Background(), second.ID, ProcessReturnRequest{
			WarehouseID: "wh-a", ProcessedBy: "ops",
		})
		require.NoError(t, err)

		stored, _ := f.orderRepo.FindByID(context.Background(), order.ID)
		assert.Equal(t, trade.OrderStatusReturned, stored.Status)
	})
}
