package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/scm/backend/internal/application/trade"
	"github.com/scm/backend/internal/interfaces/http/dto"
)

// PurchaseOrderHandler handles purchase order API endpoints
type PurchaseOrderHandler struct {
	BaseHandler
	poService *tradeapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(poService *tradeapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		poService: poService,
	}
}

// Create creates a pending purchase order against a supplier
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	var req tradeapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	po, err := h.poService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, po)
}

// Get retrieves a purchase order with its items
func (h *PurchaseOrderHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.poService.Get(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// List retrieves a paginated list of purchase orders
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := req.ToFilter()
	for _, key := range []string{"status", "supplier_id"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}

	page, err := h.poService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Receive records a full or partial delivery, incrementing the ledger at
// the receiving warehouse
func (h *PurchaseOrderHandler) Receive(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	var req tradeapp.ReceivePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	po, err := h.poService.Receive(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// Approve approves a pending purchase order
func (h *PurchaseOrderHandler) Approve(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.poService.Approve(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// MarkOrdered records that an approved purchase order was placed with the supplier
func (h *PurchaseOrderHandler) MarkOrdered(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.poService.MarkOrdered(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// Cancel cancels a purchase order that has not received any goods
func (h *PurchaseOrderHandler) Cancel(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	po, err := h.poService.Cancel(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, po)
}

// AutoGenerate produces replenishment purchase orders for products under
// their reorder threshold
func (h *PurchaseOrderHandler) AutoGenerate(c *gin.Context) {
	pos, err := h.poService.AutoGenerate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pos)
}
