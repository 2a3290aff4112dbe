package handler

import (
	"github.com/gin-gonic/gin"
	fulfillmentapp "github.com/scm/backend/internal/application/fulfillment"
	"github.com/scm/backend/internal/interfaces/http/dto"
)

// ReturnHandler handles return workflow API endpoints
type ReturnHandler struct {
	BaseHandler
	returnService *fulfillmentapp.ReturnService
}

// NewReturnHandler creates a new ReturnHandler
func NewReturnHandler(returnService *fulfillmentapp.ReturnService) *ReturnHandler {
	return &ReturnHandler{
		returnService: returnService,
	}
}

// Create opens a return request against a delivered sales order
func (h *ReturnHandler) Create(c *gin.Context) {
	var req fulfillmentapp.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ret, err := h.returnService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, ret)
}

// Get retrieves a return with its items
func (h *ReturnHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returnService.Get(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

// List retrieves a paginated list of returns
func (h *ReturnHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := req.ToFilter()
	for _, key := range []string{"status", "order_id"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}

	page, err := h.returnService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByOrder retrieves all returns for a sales order
func (h *ReturnHandler) ListByOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	if orderID == "" {
		h.BadRequest(c, "Order ID is required")
		return
	}

	returns, err := h.returnService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, returns)
}

// Approve approves a pending return for receiving
func (h *ReturnHandler) Approve(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returnService.Approve(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

// Reject rejects a pending return
func (h *ReturnHandler) Reject(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	ret, err := h.returnService.Reject(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}

// Process restocks an approved return at the given warehouse
func (h *ReturnHandler) Process(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid return ID format")
		return
	}

	var req fulfillmentapp.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	ret, err := h.returnService.Process(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ret)
}
