package catalog

import (
	"context"

	"github.com/scm/backend/internal/domain/catalog"
	"github.com/scm/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Category != "" || req.Brand != "" {
		if err := product.Update(req.Name, req.Description, req.Category, req.Brand); err != nil {
			return nil, err
		}
	}
	if req.Price != nil || req.Cost != nil {
		price := product.Price
		cost := product.Cost
		if req.Price != nil {
			price = *req.Price
		}
		if req.Cost != nil {
			cost = *req.Cost
		}
		if err := product.SetPrices(cost, price); err != nil {
			return nil, err
		}
	}
	if req.ReorderThreshold != nil || req.ReorderQuantity != nil {
		threshold := product.ReorderThreshold
		quantity := product.ReorderQuantity
		if req.ReorderThreshold != nil {
			threshold = *req.ReorderThreshold
		}
		if req.ReorderQuantity != nil {
			quantity = *req.ReorderQuantity
		}
		if err := product.SetReorderPolicy(threshold, quantity); err != nil {
			return nil, err
		}
	}
	if req.HasExpiry {
		product.SetHasExpiry(true)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	response := ToProductResponse(product)
	return &response, nil
}

// Update updates a product's basic information and policies
func (s *ProductService) Update(ctx context.Context, productID string, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description, req.Category, req.Brand); err != nil {
		return nil, err
	}
	if req.Price != nil || req.Cost != nil {
		price := product.Price
		cost := product.Cost
		if req.Price != nil {
			price = *req.Price
		}
		if req.Cost != nil {
			cost = *req.Cost
		}
		if err := product.SetPrices(cost, price); err != nil {
			return nil, err
		}
	}
	if req.ReorderThreshold != nil || req.ReorderQuantity != nil {
		threshold := product.ReorderThreshold
		quantity := product.ReorderQuantity
		if req.ReorderThreshold != nil {
			threshold = *req.ReorderThreshold
		}
		if req.ReorderQuantity != nil {
			quantity = *req.ReorderQuantity
		}
		if err := product.SetReorderPolicy(threshold, quantity); err != nil {
			return nil, err
		}
	}
	if req.HasExpiry != nil {
		product.SetHasExpiry(*req.HasExpiry)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[ProductResponse], error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	return shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize), nil
}

// Activate reactivates an inactive product
func (s *ProductService) Activate(ctx context.Context, productID string) (*ProductResponse, error) {
	return s.transition(ctx, productID, (*catalog.Product).Activate)
}

// Deactivate takes a product off sale without discarding it
func (s *ProductService) Deactivate(ctx context.Context, productID string) (*ProductResponse, error) {
	return s.transition(ctx, productID, (*catalog.Product).Deactivate)
}

// Discontinue permanently retires a product
func (s *ProductService) Discontinue(ctx context.Context, productID string) (*ProductResponse, error) {
	return s.transition(ctx, productID, (*catalog.Product).Discontinue)
}

func (s *ProductService) transition(ctx context.Context, productID string, fn func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := fn(product); err != nil {
		return nil, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range product.GetDomainEvents() {
		// Event handling is asynchronous; a failed publish must not fail the operation
		_ = s.eventPublisher.Publish(ctx, event)
	}
	product.ClearDomainEvents()
}
