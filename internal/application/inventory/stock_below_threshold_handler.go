package inventory

import (
	"context"

	"github.com/scm/backend/internal/domain/inventory"
	"github.com/scm/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StockBelowThresholdHandler reacts to low-stock events by logging a reorder
// suggestion. Actual purchase order generation stays a manual decision.
type StockBelowThresholdHandler struct {
	logger *zap.Logger
}

// NewStockBelowThresholdHandler creates a new StockBelowThresholdHandler
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{logger: logger}
}

// Handle logs the reorder suggestion carried by the event
func (h *StockBelowThresholdHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("stock below reorder threshold",
		zap.String("product_id", e.ProductID),
		zap.String("warehouse_id", e.WarehouseID),
		zap.Int("quantity", e.Quantity),
		zap.Int("reorder_threshold", e.ReorderThreshold),
		zap.Int("suggested_reorder_quantity", e.ReorderQuantity),
	)

	return nil
}

// EventTypes returns the event types this handler subscribes to
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)
