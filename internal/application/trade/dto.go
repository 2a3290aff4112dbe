package trade

import (
	"time"

	"github.com/scm/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Sales Order DTOs ====================

// CreateSalesOrderRequest represents a request to create a sales order
type CreateSalesOrderRequest struct {
	CustomerID   string                      `json:"customer_id" binding:"required"`
	CustomerName string                      `json:"customer_name"`
	Items        []CreateSalesOrderItemInput `json:"items" binding:"required,min=1,dive"`
	Notes        string                      `json:"notes"`
}

// CreateSalesOrderItemInput represents an item in the create order request
type CreateSalesOrderItemInput struct {
	ProductID            string `json:"product_id" binding:"required"`
	Quantity             int    `json:"quantity" binding:"required,gt=0"`
	PreferredWarehouseID string `json:"preferred_warehouse_id"`
}

// CancelSalesOrderRequest represents a request to cancel a sales order
type CancelSalesOrderRequest struct {
	Reason string `json:"reason"`
}

// ItemAllocationResponse represents one warehouse's share of an item
type ItemAllocationResponse struct {
	WarehouseID string `json:"warehouse_id"`
	Quantity    int    `json:"quantity"`
}

// SalesOrderItemResponse represents an order line in API responses
type SalesOrderItemResponse struct {
	ID                   string                   `json:"id"`
	ProductID            string                   `json:"product_id"`
	ProductName          string                   `json:"product_name"`
	SKU                  string                   `json:"sku"`
	Quantity             int                      `json:"quantity"`
	UnitPrice            decimal.Decimal          `json:"unit_price"`
	Amount               decimal.Decimal          `json:"amount"`
	AllocatedWarehouseID string                   `json:"allocated_warehouse_id"`
	Allocations          []ItemAllocationResponse `json:"allocations"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID           string                   `json:"id"`
	OrderNumber  string                   `json:"order_number"`
	CustomerID   string                   `json:"customer_id"`
	CustomerName string                   `json:"customer_name"`
	Status       trade.OrderStatus        `json:"status"`
	TotalAmount  decimal.Decimal          `json:"total_amount"`
	Notes        string                   `json:"notes,omitempty"`
	Items        []SalesOrderItemResponse `json:"items"`
	ConfirmedAt  *time.Time               `json:"confirmed_at,omitempty"`
	ShippedAt    *time.Time               `json:"shipped_at,omitempty"`
	DeliveredAt  *time.Time               `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time               `json:"cancelled_at,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
}

// ToSalesOrderResponse converts a sales order to its response form
func ToSalesOrderResponse(order *trade.SalesOrder) SalesOrderResponse {
	items := make([]SalesOrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		allocations := make([]ItemAllocationResponse, 0, len(item.Allocations))
		for _, alloc := range item.Allocations {
			allocations = append(allocations, ItemAllocationResponse{
				WarehouseID: alloc.WarehouseID,
				Quantity:    alloc.Quantity,
			})
		}
		items = append(items, SalesOrderItemResponse{
			ID:                   item.ID,
			ProductID:            item.ProductID,
			ProductName:          item.ProductName,
			SKU:                  item.SKU,
			Quantity:             item.Quantity,
			UnitPrice:            item.UnitPrice,
			Amount:               item.Amount,
			AllocatedWarehouseID: item.AllocatedWarehouseID,
			Allocations:          allocations,
		})
	}

	return SalesOrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		CustomerID:   order.CustomerID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		TotalAmount:  order.TotalAmount,
		Notes:        order.Notes,
		Items:        items,
		ConfirmedAt:  order.ConfirmedAt,
		ShippedAt:    order.ShippedAt,
		DeliveredAt:  order.DeliveredAt,
		CancelledAt:  order.CancelledAt,
		CreatedAt:    order.CreatedAt,
	}
}

// ToSalesOrderResponses converts a slice of sales orders
func ToSalesOrderResponses(orders []trade.SalesOrder) []SalesOrderResponse {
	responses := make([]SalesOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToSalesOrderResponse(&orders[i]))
	}
	return responses
}

// ==================== Purchase Order DTOs ====================

// CreatePurchaseOrderRequest represents a request to create a purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID   string                         `json:"supplier_id" binding:"required"`
	ExpectedDate *time.Time                     `json:"expected_date"`
	Items        []CreatePurchaseOrderItemInput `json:"items" binding:"required,min=1,dive"`
	Notes        string                         `json:"notes"`
}

// CreatePurchaseOrderItemInput represents an item in the create request
type CreatePurchaseOrderItemInput struct {
	ProductID string          `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// ReceiveItemInput represents goods arriving against one line item
type ReceiveItemInput struct {
	ItemID      string     `json:"item_id" binding:"required"`
	Quantity    int        `json:"quantity" binding:"required,gt=0"`
	BatchNumber string     `json:"batch_number"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

// ReceivePurchaseOrderRequest represents a receiving pass at a warehouse
type ReceivePurchaseOrderRequest struct {
	WarehouseID string             `json:"warehouse_id" binding:"required"`
	Items       []ReceiveItemInput `json:"items" binding:"required,min=1,dive"`
}

// PurchaseOrderItemResponse represents a purchase order line in API responses
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name"`
	Quantity         int             `json:"quantity"`
	ReceivedQuantity int             `json:"received_quantity"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	Amount           decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	PONumber     string                      `json:"po_number"`
	SupplierID   string                      `json:"supplier_id"`
	SupplierName string                      `json:"supplier_name"`
	Status       trade.PurchaseOrderStatus   `json:"status"`
	TotalAmount  decimal.Decimal             `json:"total_amount"`
	Notes        string                      `json:"notes,omitempty"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	ExpectedDate *time.Time                  `json:"expected_date,omitempty"`
	ReceivedDate *time.Time                  `json:"received_date,omitempty"`
	CreatedAt    time.Time                   `json:"created_at"`
}

// ToPurchaseOrderResponse converts a purchase order to its response form
func ToPurchaseOrderResponse(po *trade.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(po.Items))
	for _, item := range po.Items {
		items = append(items, PurchaseOrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			ReceivedQuantity: item.ReceivedQuantity,
			UnitCost:         item.UnitCost,
			Amount:           item.Amount,
		})
	}

	return PurchaseOrderResponse{
		ID:           po.ID,
		PONumber:     po.PONumber,
		SupplierID:   po.SupplierID,
		SupplierName: po.SupplierName,
		Status:       po.Status,
		TotalAmount:  po.TotalAmount,
		Notes:        po.Notes,
		Items:        items,
		ExpectedDate: po.ExpectedDate,
		ReceivedDate: po.ReceivedDate,
		CreatedAt:    po.CreatedAt,
	}
}

// ToPurchaseOrderResponses converts a slice of purchase orders
func ToPurchaseOrderResponses(orders []trade.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	return responses
}
