package partner

import (
	"strings"
	"time"

	"github.com/scm/backend/internal/domain/shared"
)

// WarehouseStatus represents the operational status of a warehouse
type WarehouseStatus string

const (
	WarehouseStatusActive      WarehouseStatus = "active"
	WarehouseStatusInactive    WarehouseStatus = "inactive"
	WarehouseStatusMaintenance WarehouseStatus = "maintenance"
)

// Warehouse represents a physical stock location
// It is the aggregate root for warehouse-related operations
type Warehouse struct {
	shared.BaseAggregateRoot
	Code     string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name     string          `gorm:"type:varchar(200);not null"`
	Location string          `gorm:"type:varchar(200)"`
	Status   WarehouseStatus `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(code, name, location string) (*Warehouse, error) {
	if err := validateWarehouseCode(code); err != nil {
		return nil, err
	}
	if err := validatePartnerName(name); err != nil {
		return nil, err
	}

	return &Warehouse{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Location:          location,
		Status:            WarehouseStatusActive,
	}, nil
}

// Update updates the warehouse's basic information
func (w *Warehouse) Update(name, location string) error {
	if err := validatePartnerName(name); err != nil {
		return err
	}

	w.Name = name
	w.Location = location
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// SetStatus transitions the warehouse to the given status
func (w *Warehouse) SetStatus(status WarehouseStatus) error {
	switch status {
	case WarehouseStatusActive, WarehouseStatusInactive, WarehouseStatusMaintenance:
	default:
		return shared.NewDomainError("INVALID_STATUS", "Unknown warehouse status: "+string(status))
	}

	w.Status = status
	w.UpdatedAt = time.Now()
	w.IncrementVersion()

	return nil
}

// IsActive reports whether the warehouse can receive and ship stock
func (w *Warehouse) IsActive() bool {
	return w.Status == WarehouseStatusActive
}

func validateWarehouseCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code is required")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Warehouse code cannot exceed 50 characters")
	}
	return nil
}

func validatePartnerName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name is required")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 200 characters")
	}
	return nil
}
