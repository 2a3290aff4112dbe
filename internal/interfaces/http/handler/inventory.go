package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/scm/backend/internal/application/inventory"
	"github.com/scm/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory ledger API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
	transferService  *inventoryapp.TransferService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService, transferService *inventoryapp.TransferService) *InventoryHandler {
	return &InventoryHandler{
		inventoryService: inventoryService,
		transferService:  transferService,
	}
}

// List retrieves a paginated list of inventory records
func (h *InventoryHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := req.ToFilter()
	for _, key := range []string{"product_id", "warehouse_id", "batch_number"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}
	if c.Query("in_stock") == "true" {
		filter.Filters["in_stock"] = true
	}

	page, err := h.inventoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByProduct retrieves all inventory records for a product across warehouses
func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	productID := c.Param("product_id")
	if productID == "" {
		h.BadRequest(c, "Product ID is required")
		return
	}

	items, err := h.inventoryService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// Increment adds physical stock at a warehouse, creating the record on demand
func (h *InventoryHandler) Increment(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.inventoryService.Increment(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Decrement removes physical stock from a warehouse
func (h *InventoryHandler) Decrement(c *gin.Context) {
	var req inventoryapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.inventoryService.Decrement(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Release releases a reservation without consuming stock
func (h *InventoryHandler) Release(c *gin.Context) {
	var req inventoryapp.ReleaseStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.inventoryService.Release(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Transfer moves available stock between warehouses atomically
func (h *InventoryHandler) Transfer(c *gin.Context) {
	var req inventoryapp.TransferStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.transferService.Transfer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
