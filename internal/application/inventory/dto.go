package inventory

import (
	"time"

	"github.com/scm/backend/internal/domain/inventory"
)

// AdjustStockRequest represents a request to add or remove physical stock
type AdjustStockRequest struct {
	ProductID   string     `json:"product_id" binding:"required"`
	WarehouseID string     `json:"warehouse_id" binding:"required"`
	Quantity    int        `json:"quantity" binding:"required,gt=0"`
	BatchNumber string     `json:"batch_number"`
	ExpiryDate  *time.Time `json:"expiry_date"`
}

// ReleaseStockRequest represents a request to release a reservation
type ReleaseStockRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	WarehouseID string `json:"warehouse_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// TransferStockRequest represents a request to move stock between warehouses
type TransferStockRequest struct {
	ProductID         string `json:"product_id" binding:"required"`
	SourceWarehouseID string `json:"source_warehouse_id" binding:"required"`
	DestWarehouseID   string `json:"dest_warehouse_id" binding:"required"`
	Quantity          int    `json:"quantity" binding:"required,gt=0"`
}

// InventoryItemResponse represents an inventory record in API responses
type InventoryItemResponse struct {
	ID                string     `json:"id"`
	ProductID         string     `json:"product_id"`
	WarehouseID       string     `json:"warehouse_id"`
	Quantity          int        `json:"quantity"`
	ReservedQuantity  int        `json:"reserved_quantity"`
	AvailableQuantity int        `json:"available_quantity"`
	BatchNumber       string     `json:"batch_number,omitempty"`
	ExpiryDate        *time.Time `json:"expiry_date,omitempty"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ToInventoryItemResponse converts an inventory item to its response form
func ToInventoryItemResponse(item *inventory.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:                item.ID,
		ProductID:         item.ProductID,
		WarehouseID:       item.WarehouseID,
		Quantity:          item.Quantity,
		ReservedQuantity:  item.ReservedQuantity,
		AvailableQuantity: item.AvailableQuantity(),
		BatchNumber:       item.BatchNumber,
		ExpiryDate:        item.ExpiryDate,
		UpdatedAt:         item.UpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of inventory items
func ToInventoryItemResponses(items []inventory.InventoryItem) []InventoryItemResponse {
	responses := make([]InventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, ToInventoryItemResponse(&items[i]))
	}
	return responses
}
