package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/scm/backend/internal/domain/fulfillment"
	"github.com/scm/backend/internal/domain/shared"
)

// GormReturnRepository implements ReturnRepository using GORM
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// FindByID finds a return with its items
func (r *GormReturnRepository) FindByID(ctx context.Context, id string) (*fulfillment.Return, error) {
	var ret fulfillment.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&ret, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ret, nil
}

// FindByOrder finds all returns for a sales order
func (r *GormReturnRepository) FindByOrder(ctx context.Context, orderID string) ([]fulfillment.Return, error) {
	var returns []fulfillment.Return
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&returns).Error; err != nil {
		return nil, err
	}
	return returns, nil
}

// FindAll finds returns matching the filter
func (r *GormReturnRepository) FindAll(ctx context.Context, filter shared.Filter) ([]fulfillment.Return, error) {
	var returns []fulfillment.Return
	err := r.filterScope(r.db.WithContext(ctx).Model(&fulfillment.Return{}), filter).
		Scopes(listScope(filter, ReturnSortFields, "created_at")).
		Preload("Items").
		Find(&returns).Error
	if err != nil {
		return nil, err
	}
	return returns, nil
}

// Save creates or updates a return with its items
func (r *GormReturnRepository) Save(ctx context.Context, ret *fulfillment.Return) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(ret).Error
}

// Count counts returns matching the filter
func (r *GormReturnRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	err := r.filterScope(r.db.WithContext(ctx).Model(&fulfillment.Return{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// NextReturnNumber generates a unique return document number
func (r *GormReturnRepository) NextReturnNumber(ctx context.Context) (string, error) {
	return NextDocumentNumber(ReturnPrefix), nil
}

// filterScope narrows the query by the filter's search term and
// field-level criteria, leaving pagination and ordering to listScope.
func (r *GormReturnRepository) filterScope(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("return_number ILIKE ? OR reason ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		}
	}

	return query
}

// Ensure GormReturnRepository implements ReturnRepository
var _ fulfillment.ReturnRepository = (*GormReturnRepository)(nil)
