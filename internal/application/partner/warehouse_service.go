package partner

import (
	"context"
	"errors"

	"github.com/scm/backend/internal/domain/partner"
	"github.com/scm/backend/internal/domain/shared"
)

// WarehouseService handles warehouse-related business operations
type WarehouseService struct {
	warehouseRepo partner.WarehouseRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(warehouseRepo partner.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// Create creates a new warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	if _, err := s.warehouseRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	warehouse, err := partner.NewWarehouse(req.Code, req.Name, req.Location)
	if err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// Update updates a warehouse's basic information
func (s *WarehouseService) Update(ctx context.Context, warehouseID string, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if err := warehouse.Update(req.Name, req.Location); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// SetStatus transitions a warehouse between active, inactive and maintenance
func (s *WarehouseService) SetStatus(ctx context.Context, warehouseID string, req SetWarehouseStatusRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	if err := warehouse.SetStatus(req.Status); err != nil {
		return nil, err
	}

	if err := s.warehouseRepo.Save(ctx, warehouse); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// GetByID retrieves a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, warehouseID string) (*WarehouseResponse, error) {
	warehouse, err := s.warehouseRepo.FindByID(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(warehouse)
	return &response, nil
}

// List retrieves warehouses matching the filter
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[WarehouseResponse], error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[WarehouseResponse]{}, err
	}
	total, err := s.warehouseRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[WarehouseResponse]{}, err
	}
	return shared.NewPaginated(ToWarehouseResponses(warehouses), total, filter.Page, filter.PageSize), nil
}

// ListActive retrieves the warehouses currently able to hold stock
func (s *WarehouseService) ListActive(ctx context.Context) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouseRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToWarehouseResponses(warehouses), nil
}
