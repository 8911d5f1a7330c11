package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindAll finds suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)

	// ExistsByID reports whether a supplier exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByName reports whether a supplier with the given name exists,
	// ignoring case, excluding excludeID when it is non-nil
	ExistsByName(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// Delete removes a supplier
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts suppliers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
