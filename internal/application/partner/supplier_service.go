package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartsupplypro/inventory/internal/domain/partner"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// SystemActor is recorded when no authenticated user is present
const SystemActor = "system"

// SupplierService handles supplier master data. Suppliers are only a weak
// reference for items and ledger entries, so mutations here never touch
// stock or the ledger.
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest, actor string) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByName(ctx, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("DUPLICATE_SUPPLIER", "A supplier with this name already exists")
	}

	supplier, err := partner.NewSupplier(req.Name, req.ContactName, req.Phone, req.Email, resolveActor(actor))
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination, name ascending
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSupplierResponses(suppliers), total, nil
}

// Update updates a supplier's master data
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := supplier.Name
	if req.Name != nil {
		name = *req.Name
		if name != supplier.Name {
			exists, err := s.supplierRepo.ExistsByName(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewConflictError("DUPLICATE_SUPPLIER", "A supplier with this name already exists")
			}
		}
	}
	contactName := supplier.ContactName
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	phone := supplier.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := supplier.Email
	if req.Email != nil {
		email = *req.Email
	}

	if err := supplier.Update(name, contactName, phone, email); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete removes a supplier. Items and ledger entries referencing it keep
// their supplier_id; the database rejects the delete while live items still
// point at it.
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.supplierRepo.Delete(ctx, id)
}

func resolveActor(actor string) string {
	if actor == "" {
		return SystemActor
	}
	return actor
}
