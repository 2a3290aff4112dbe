package inventory

import (
	"sort"

	"github.com/scm/backend/internal/domain/catalog"
	"github.com/scm/backend/internal/domain/shared"
)

// StockAllocationService is a domain service that decides which warehouses
// fill a requested quantity of a product, and applies the resulting
// reservations across the affected InventoryItem aggregates.
//
// Allocation is all-or-nothing: either the full requested quantity can be
// reserved, possibly split across warehouses, or the request fails and no
// stock is held.
//
// Warehouse selection order:
//  1. The preferred warehouse, when given and it alone covers the request.
//  2. A single warehouse that covers the whole request, taken in sorted order.
//  3. A greedy split across warehouses in sorted order.
//
// Sorting uses earliest expiry first for products that carry expiry dates
// (when both records have one), otherwise largest available quantity first.
type StockAllocationService struct{}

// NewStockAllocationService creates a new stock allocation service
func NewStockAllocationService() *StockAllocationService {
	return &StockAllocationService{}
}

// Allocation is one warehouse's share of a fulfilled request
type Allocation struct {
	WarehouseID string
	Quantity    int
}

// AllocationRequest asks for a quantity of one product
type AllocationRequest struct {
	Product              *catalog.Product
	Quantity             int
	PreferredWarehouseID string
}

// Validate validates the allocation request
func (r *AllocationRequest) Validate() error {
	if r.Product == nil {
		return shared.NewDomainError("INVALID_REQUEST", "Product is required for allocation")
	}
	if r.Quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Allocation quantity must be positive")
	}
	return nil
}

// Plan computes the warehouse split for a request without reserving anything.
// The items slice holds the product's inventory records across all warehouses.
func (s *StockAllocationService) Plan(req AllocationRequest, items []*InventoryItem) ([]Allocation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// A product with no inventory record anywhere is a lookup failure,
	// not a stock shortage
	if len(items) == 0 {
		return nil, shared.NewDomainError("PRODUCT_NOT_STOCKED",
			"Product not found in any warehouse: "+req.Product.ID)
	}

	// Preferred warehouse shortcut: use it only when it covers the whole request
	if req.PreferredWarehouseID != "" {
		for _, item := range items {
			if item.WarehouseID == req.PreferredWarehouseID && item.AvailableQuantity() >= req.Quantity {
				return []Allocation{{WarehouseID: item.WarehouseID, Quantity: req.Quantity}}, nil
			}
		}
	}

	candidates := make([]*InventoryItem, 0, len(items))
	for _, item := range items {
		if item.AvailableQuantity() > 0 {
			candidates = append(candidates, item)
		}
	}

	s.sortCandidates(req.Product, candidates)

	// Prefer filling from a single warehouse before splitting
	for _, item := range candidates {
		if item.AvailableQuantity() >= req.Quantity {
			return []Allocation{{WarehouseID: item.WarehouseID, Quantity: req.Quantity}}, nil
		}
	}

	var allocations []Allocation
	remaining := req.Quantity
	for _, item := range candidates {
		if remaining <= 0 {
			break
		}
		take := item.AvailableQuantity()
		if take > remaining {
			take = remaining
		}
		allocations = append(allocations, Allocation{WarehouseID: item.WarehouseID, Quantity: take})
		remaining -= take
	}

	if remaining > 0 {
		return nil, shared.NewDomainError("INSUFFICIENT_STOCK",
			"Insufficient stock to allocate requested quantity for product "+req.Product.ID)
	}

	return allocations, nil
}

// Apply reserves stock on the inventory records according to a plan.
// If any reservation fails, previously applied reservations are released
// so the aggregates are left untouched.
func (s *StockAllocationService) Apply(allocations []Allocation, items []*InventoryItem) error {
	byWarehouse := make(map[string]*InventoryItem, len(items))
	for _, item := range items {
		byWarehouse[item.WarehouseID] = item
	}

	applied := make([]Allocation, 0, len(allocations))
	for _, alloc := range allocations {
		item, ok := byWarehouse[alloc.WarehouseID]
		if !ok {
			s.compensate(applied, byWarehouse)
			return shared.NewDomainError("INVALID_ALLOCATION",
				"No inventory record for warehouse "+alloc.WarehouseID)
		}
		if err := item.Reserve(alloc.Quantity); err != nil {
			s.compensate(applied, byWarehouse)
			return err
		}
		applied = append(applied, alloc)
	}

	return nil
}

func (s *StockAllocationService) compensate(applied []Allocation, byWarehouse map[string]*InventoryItem) {
	for _, alloc := range applied {
		if item, ok := byWarehouse[alloc.WarehouseID]; ok {
			_ = item.Release(alloc.Quantity)
		}
	}
}

func (s *StockAllocationService) sortCandidates(product *catalog.Product, candidates []*InventoryItem) {
	sort.SliceStable(candidates, func(a, b int) bool {
		left, right := candidates[a], candidates[b]
		if product.HasExpiry && left.ExpiryDate != nil && right.ExpiryDate != nil {
			return left.ExpiryDate.Before(*right.ExpiryDate)
		}
		return left.AvailableQuantity() > right.AvailableQuantity()
	})
}
