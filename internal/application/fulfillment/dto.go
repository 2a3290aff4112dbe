package fulfillment

import (
	"time"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/shopspring/decimal"
)

// ==================== Shipment DTOs ====================

// CreateShipmentRequest represents a request to create a shipment for an order
type CreateShipmentRequest struct {
	OrderID                string `json:"order_id" binding:"required"`
	OriginWarehouseID      string `json:"origin_warehouse_id"`
	DestinationWarehouseID string `json:"destination_warehouse_id"`
	Carrier                string `json:"carrier"`
	TrackingURL            string `json:"tracking_url"`
	Notes                  string `json:"notes"`
}

// UpdateShipmentStatusRequest represents a status transition request
type UpdateShipmentStatusRequest struct {
	Status      fulfillment.ShipmentStatus `json:"status" binding:"required"`
	Carrier     string                     `json:"carrier"`
	TrackingURL string                     `json:"tracking_url"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID                     string                     `json:"id"`
	ShipmentNumber         string                     `json:"shipment_number"`
	OrderID                string                     `json:"order_id"`
	OriginWarehouseID      string                     `json:"origin_warehouse_id"`
	DestinationWarehouseID string                     `json:"destination_warehouse_id,omitempty"`
	Carrier                string                     `json:"carrier,omitempty"`
	TrackingURL            string                     `json:"tracking_url,omitempty"`
	Status                 fulfillment.ShipmentStatus `json:"status"`
	Notes                  string                     `json:"notes,omitempty"`
	ShippedDate            *time.Time                 `json:"shipped_date,omitempty"`
	DeliveredDate          *time.Time                 `json:"delivered_date,omitempty"`
	CreatedAt              time.Time                  `json:"created_at"`
}

// ToShipmentResponse converts a shipment to its response form
func ToShipmentResponse(shipment *fulfillment.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:                     shipment.ID,
		ShipmentNumber:         shipment.ShipmentNumber,
		OrderID:                shipment.OrderID,
		OriginWarehouseID:      shipment.OriginWarehouseID,
		DestinationWarehouseID: shipment.DestinationWarehouseID,
		Carrier:                shipment.Carrier,
		TrackingURL:            shipment.TrackingURL,
		Status:                 shipment.Status,
		Notes:                  shipment.Notes,
		ShippedDate:            shipment.ShippedDate,
		DeliveredDate:          shipment.DeliveredDate,
		CreatedAt:              shipment.CreatedAt,
	}
}

// ToShipmentResponses converts a slice of shipments
func ToShipmentResponses(shipments []fulfillment.Shipment) []ShipmentResponse {
	responses := make([]ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		responses = append(responses, ToShipmentResponse(&shipments[i]))
	}
	return responses
}

// ==================== Return DTOs ====================

// CreateReturnItemInput represents one product coming back
type CreateReturnItemInput struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reason    string `json:"reason"`
}

// CreateReturnRequest represents a request to open a return against an order
type CreateReturnRequest struct {
	OrderID string                  `json:"order_id" binding:"required"`
	Reason  string                  `json:"reason"`
	Items   []CreateReturnItemInput `json:"items" binding:"required,min=1,dive"`
}

// ProcessReturnRequest restocks the returned goods at a warehouse
type ProcessReturnRequest struct {
	WarehouseID string `json:"warehouse_id" binding:"required"`
	ProcessedBy string `json:"processed_by" binding:"required"`
}

// ReturnItemResponse represents a return line in API responses
type ReturnItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	Reason       string          `json:"reason,omitempty"`
}

// ReturnResponse represents a return in API responses
type ReturnResponse struct {
	ID           string                   `json:"id"`
	ReturnNumber string                   `json:"return_number"`
	OrderID      string                   `json:"order_id"`
	Status       fulfillment.ReturnStatus `json:"status"`
	RefundTotal  decimal.Decimal          `json:"refund_total"`
	Reason       string                   `json:"reason,omitempty"`
	Items        []ReturnItemResponse     `json:"items"`
	ReceivedDate *time.Time               `json:"received_date,omitempty"`
	ProcessedAt  *time.Time               `json:"processed_at,omitempty"`
	ProcessedBy  string                   `json:"processed_by,omitempty"`
	CreatedAt    time.Time                `json:"created_at"`
}

// ToReturnResponse converts a return to its response form
func ToReturnResponse(ret *fulfillment.Return) ReturnResponse {
	items := make([]ReturnItemResponse, 0, len(ret.Items))
	for _, item := range ret.Items {
		items = append(items, ReturnItemResponse{
			ID:           item.ID,
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			UnitPrice:    item.UnitPrice,
			RefundAmount: item.RefundAmount,
			Reason:       item.Reason,
		})
	}

	return ReturnResponse{
		ID:           ret.ID,
		ReturnNumber: ret.ReturnNumber,
		OrderID:      ret.OrderID,
		Status:       ret.Status,
		RefundTotal:  ret.RefundTotal,
		Reason:       ret.Reason,
		Items:        items,
		ReceivedDate: ret.ReceivedDate,
		ProcessedAt:  ret.ProcessedAt,
		ProcessedBy:  ret.ProcessedBy,
		CreatedAt:    ret.CreatedAt,
	}
}

// ToReturnResponses converts a slice of returns
func ToReturnResponses(returns []fulfillment.Return) []ReturnResponse {
	responses := make([]ReturnResponse, 0, len(returns))
	for i := range returns {
		responses = append(responses, ToReturnResponse(&returns[i]))
	}
	return responses
}
