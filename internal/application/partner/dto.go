package partner

import (
	"time"

	"github.com/scm/backend/internal/domain/partner"
)

// ==================== Supplier DTOs ====================

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Code         string `json:"code" binding:"required,max=50"`
	Name         string `json:"name" binding:"required,max=200"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	LeadTimeDays *int   `json:"lead_time_days"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	ContactName  string `json:"contact_name" binding:"max=100"`
	Email        string `json:"email" binding:"omitempty,email"`
	Phone        string `json:"phone" binding:"max=50"`
	Address      string `json:"address" binding:"max=500"`
	LeadTimeDays *int   `json:"lead_time_days"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID           string                 `json:"id"`
	Code         string                 `json:"code"`
	Name         string                 `json:"name"`
	ContactName  string                 `json:"contact_name,omitempty"`
	Email        string                 `json:"email,omitempty"`
	Phone        string                 `json:"phone,omitempty"`
	Address      string                 `json:"address,omitempty"`
	LeadTimeDays int                    `json:"lead_time_days"`
	Status       partner.SupplierStatus `json:"status"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// ToSupplierResponse converts a supplier to its response form
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:           supplier.ID,
		Code:         supplier.Code,
		Name:         supplier.Name,
		ContactName:  supplier.ContactName,
		Email:        supplier.Email,
		Phone:        supplier.Phone,
		Address:      supplier.Address,
		LeadTimeDays: supplier.LeadTimeDays,
		Status:       supplier.Status,
		CreatedAt:    supplier.CreatedAt,
		UpdatedAt:    supplier.UpdatedAt,
	}
}

// ToSupplierResponses converts a slice of suppliers
func ToSupplierResponses(suppliers []partner.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	return responses
}

// ==================== Warehouse DTOs ====================

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Code     string `json:"code" binding:"required,max=50"`
	Name     string `json:"name" binding:"required,max=200"`
	Location string `json:"location" binding:"max=200"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Location string `json:"location" binding:"max=200"`
}

// SetWarehouseStatusRequest represents a status change request
type SetWarehouseStatusRequest struct {
	Status partner.WarehouseStatus `json:"status" binding:"required"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        string                  `json:"id"`
	Code      string                  `json:"code"`
	Name      string                  `json:"name"`
	Location  string                  `json:"location,omitempty"`
	Status    partner.WarehouseStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// ToWarehouseResponse converts a warehouse to its response form
func ToWarehouseResponse(warehouse *partner.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        warehouse.ID,
		Code:      warehouse.Code,
		Name:      warehouse.Name,
		Location:  warehouse.Location,
		Status:    warehouse.Status,
		CreatedAt: warehouse.CreatedAt,
		UpdatedAt: warehouse.UpdatedAt,
	}
}

// ToWarehouseResponses converts a slice of warehouses
func ToWarehouseResponses(warehouses []partner.Warehouse) []WarehouseResponse {
	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return responses
}
