package partner

import (
	"context"
	"errors"

	"github.com/scm/backend/internal/domain/partner"
	"github.com/scm/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	if _, err := s.supplierRepo.FindByCode(ctx, req.Code); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this code already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	supplier, err := partner.NewSupplier(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if req.ContactName != "" || req.Email != "" || req.Phone != "" || req.Address != "" {
		if err := supplier.Update(req.Name, req.ContactName, req.Email, req.Phone, req.Address); err != nil {
			return nil, err
		}
	}
	if req.LeadTimeDays != nil {
		if err := supplier.SetLeadTime(*req.LeadTimeDays); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update updates a supplier's contact details and lead time
func (s *SupplierService) Update(ctx context.Context, supplierID string, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if err := supplier.Update(req.Name, req.ContactName, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if req.LeadTimeDays != nil {
		if err := supplier.SetLeadTime(*req.LeadTimeDays); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID string) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers matching the filter
func (s *SupplierService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[SupplierResponse], error) {
	suppliers, err := s.supplierRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}
	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[SupplierResponse]{}, err
	}
	return shared.NewPaginated(ToSupplierResponses(suppliers), total, filter.Page, filter.PageSize), nil
}

// Activate reactivates a supplier so purchase orders can be placed again
func (s *SupplierService) Activate(ctx context.Context, supplierID string) (*SupplierResponse, error) {
	return s.transition(ctx, supplierID, (*partner.Supplier).Activate)
}

// Deactivate blocks new purchase orders against the supplier
func (s *SupplierService) Deactivate(ctx context.Context, supplierID string) (*SupplierResponse, error) {
	return s.transition(ctx, supplierID, (*partner.Supplier).Deactivate)
}

func (s *SupplierService) transition(ctx context.Context, supplierID string, fn func(*partner.Supplier) error) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if err := fn(supplier); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}
