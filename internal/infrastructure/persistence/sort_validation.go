package persistence

import (
	"strings"

	"gorm.io/gorm"

	"github.com/scm/backend/internal/domain/shared"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// listScope returns a GORM scope that applies the filter's pagination
// and ORDER BY clause. The sort field is checked against the allowed
// whitelist so user input never reaches the SQL unvalidated.
func listScope(filter shared.Filter, allowed map[string]bool, defaultField string) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		if filter.Page > 0 && filter.PageSize > 0 {
			query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
		}
		field := ValidateSortField(filter.OrderBy, allowed, defaultField)
		return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	}
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"category":   true,
	"brand":      true,
	"status":     true,
	"price":      true,
	"cost":       true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"name":           true,
	"contact_name":   true,
	"status":         true,
	"lead_time_days": true,
}

// WarehouseSortFields contains allowed sort fields for warehouses
var WarehouseSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"code":       true,
	"name":       true,
	"location":   true,
	"status":     true,
}

// InventorySortFields contains allowed sort fields for inventory items
var InventorySortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"product_id":        true,
	"warehouse_id":      true,
	"quantity":          true,
	"reserved_quantity": true,
	"batch_number":      true,
	"expiry_date":       true,
}

// SalesOrderSortFields contains allowed sort fields for sales orders
var SalesOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"customer_id":   true,
	"customer_name": true,
	"status":        true,
	"total_amount":  true,
	"confirmed_at":  true,
	"shipped_at":    true,
	"delivered_at":  true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"po_number":     true,
	"supplier_id":   true,
	"supplier_name": true,
	"status":        true,
	"total_amount":  true,
	"expected_date": true,
	"received_date": true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"shipment_number":     true,
	"order_id":            true,
	"origin_warehouse_id": true,
	"carrier":             true,
	"status":              true,
	"shipped_date":        true,
	"delivered_date":      true,
}

// ReturnSortFields contains allowed sort fields for returns
var ReturnSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"return_number": true,
	"order_id":      true,
	"status":        true,
	"refund_total":  true,
	"received_date": true,
	"processed_at":  true,
}
