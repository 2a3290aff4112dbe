package handler

import (
	"github.com/gin-gonic/gin"
	fulfillmentapp "github.com/scm/backend/internal/application/fulfillment"
	"github.com/scm/backend/internal/interfaces/http/dto"
)

// ShipmentHandler handles shipment API endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *fulfillmentapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(shipmentService *fulfillmentapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
	}
}

// Create creates a shipment for a confirmed or processing sales order
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req fulfillmentapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shipment)
}

// Get retrieves a shipment by its ID
func (h *ShipmentHandler) Get(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.Get(c.Request.Context(), uri.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}

// List retrieves a paginated list of shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := req.ToFilter()
	for _, key := range []string{"status", "order_id", "carrier"} {
		if v := c.Query(key); v != "" {
			filter.Filters[key] = v
		}
	}

	page, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListByOrder retrieves all shipments for a sales order
func (h *ShipmentHandler) ListByOrder(c *gin.Context) {
	orderID := c.Param("order_id")
	if orderID == "" {
		h.BadRequest(c, "Order ID is required")
		return
	}

	shipments, err := h.shipmentService.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipments)
}

// UpdateStatus advances a shipment through its lifecycle. Stock is consumed
// on pick and the parent order closes on delivery.
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	var req fulfillmentapp.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipmentService.UpdateStatus(c.Request.Context(), uri.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}
