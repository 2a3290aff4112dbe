package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scm/backend/internal/domain/shared"
	"github.com/scm/backend/internal/domain/trade"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its items
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id string) (*trade.PurchaseOrder, error) {
	var po trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindByPONumber finds a purchase order by its document number
func (r *GormPurchaseOrderRepository) FindByPONumber(ctx context.Context, poNumber string) (*trade.PurchaseOrder, error) {
	var po trade.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&po, "po_number = ?", poNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindAll finds purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	err := r.filterScope(r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}), filter).
		Scopes(listScope(filter, PurchaseOrderSortFields, "created_at")).
		Preload("Items").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates a purchase order with its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(po).Error
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filterScope(r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// NextPONumber generates a unique purchase order document number
func (r *GormPurchaseOrderRepository) NextPONumber(ctx context.Context) (string, error) {
	return NextDocumentNumber(PurchaseOrderPrefix), nil
}

// filterScope narrows the query by the filter's search term and
// field-level criteria, leaving pagination and ordering to listScope.
func (r *GormPurchaseOrderRepository) filterScope(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("po_number ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
