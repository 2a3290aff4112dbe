package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/shared"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id string) (*fulfillment.Shipment, error) {
	var shipment fulfillment.Shipment
	if err := r.db.WithContext(ctx).First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindByOrder finds all shipments for a sales order
func (r *GormShipmentRepository) FindByOrder(ctx context.Context, orderID string) ([]fulfillment.Shipment, error) {
	var shipments []fulfillment.Shipment
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindAll finds shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fulfillment.Shipment, error) {
	var shipments []fulfillment.Shipment
	err := r.filterScope(r.db.WithContext(ctx).Model(&fulfillment.Shipment{}), filter).
		Scopes(listScope(filter, ShipmentSortFields, "created_at")).
		Find(&shipments).Error
	if err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *fulfillment.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}

// Count counts shipments matching the filter
func (r *GormShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filterScope(r.db.WithContext(ctx).Model(&fulfillment.Shipment{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// NextShipmentNumber generates a unique tracking document number
func (r *GormShipmentRepository) NextShipmentNumber(ctx context.Context) (string, error) {
	return NextDocumentNumber(ShipmentPrefix), nil
}

// filterScope narrows the query by the filter's search term and
// field-level criteria, leaving pagination and ordering to listScope.
func (r *GormShipmentRepository) filterScope(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("shipment_number ILIKE ? OR carrier ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "origin_warehouse_id":
			query = query.Where("origin_warehouse_id = ?", value)
		case "carrier":
			query = query.Where("carrier = ?", value)
		}
	}

	return query
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ fulfillment.ShipmentRepository = (*GormShipmentRepository)(nil)
