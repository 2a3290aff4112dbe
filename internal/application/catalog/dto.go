package catalog

import (
	"time"

	"github.com/scm/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU              string           `json:"sku" binding:"required,max=50"`
	Name             string           `json:"name" binding:"required,max=200"`
	Description      string           `json:"description"`
	Category         string           `json:"category" binding:"max=100"`
	Brand            string           `json:"brand" binding:"max=100"`
	Unit             string           `json:"unit" binding:"required,max=20"`
	Price            *decimal.Decimal `json:"price"`
	Cost             *decimal.Decimal `json:"cost"`
	ReorderThreshold *int             `json:"reorder_threshold"`
	ReorderQuantity  *int             `json:"reorder_quantity"`
	HasExpiry        bool             `json:"has_expiry"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name             string           `json:"name" binding:"required,max=200"`
	Description      string           `json:"description"`
	Category         string           `json:"category" binding:"max=100"`
	Brand            string           `json:"brand" binding:"max=100"`
	Price            *decimal.Decimal `json:"price"`
	Cost             *decimal.Decimal `json:"cost"`
	ReorderThreshold *int             `json:"reorder_threshold"`
	ReorderQuantity  *int             `json:"reorder_quantity"`
	HasExpiry        *bool            `json:"has_expiry"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               string                `json:"id"`
	SKU              string                `json:"sku"`
	Name             string                `json:"name"`
	Description      string                `json:"description,omitempty"`
	Category         string                `json:"category,omitempty"`
	Brand            string                `json:"brand,omitempty"`
	Unit             string                `json:"unit"`
	Price            decimal.Decimal       `json:"price"`
	Cost             decimal.Decimal       `json:"cost"`
	ReorderThreshold int                   `json:"reorder_threshold"`
	ReorderQuantity  int                   `json:"reorder_quantity"`
	HasExpiry        bool                  `json:"has_expiry"`
	Status           catalog.ProductStatus `json:"status"`
	CreatedAt        time.Time             `json:"created_at"`
	UpdatedAt        time.Time             `json:"updated_at"`
}

// ToProductResponse converts a product to its response form
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:               product.ID,
		SKU:              product.SKU,
		Name:             product.Name,
		Description:      product.Description,
		Category:         product.Category,
		Brand:            product.Brand,
		Unit:             product.Unit,
		Price:            product.Price,
		Cost:             product.Cost,
		ReorderThreshold: product.ReorderThreshold,
		ReorderQuantity:  product.ReorderQuantity,
		HasExpiry:        product.HasExpiry,
		Status:           product.Status,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses
}
