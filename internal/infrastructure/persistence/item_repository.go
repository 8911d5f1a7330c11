package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryItemRepository implements InventoryItemRepository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// FindByID finds an item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate loads an item with SELECT ... FOR UPDATE. Concurrent
// mutations on the same row serialize on this lock; the context deadline
// bounds the wait.
func (r *GormInventoryItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, shared.ErrConcurrencyConflict
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds items matching the filter
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryItem{}), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindDuplicate finds a live item with the same name (case-insensitive) and
// price, excluding the given ID. Returns nil when there is none.
func (r *GormInventoryItemRepository) FindDuplicate(ctx context.Context, name string, price decimal.Decimal, excludeID uuid.UUID) (*inventory.InventoryItem, error) {
	var item inventory.InventoryItem
	query := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND price = ?", name, price)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// FindBelowMinimum finds items at or below their reorder threshold
func (r *GormInventoryItemRepository) FindBelowMinimum(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&inventory.InventoryItem{}).
			Where("quantity <= minimum_quantity"),
		filter,
	)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SearchByName finds items whose name contains the term, price ascending
func (r *GormInventoryItemRepository) SearchByName(ctx context.Context, name string, filter shared.Filter) ([]inventory.InventoryItem, error) {
	var items []inventory.InventoryItem
	query := r.db.WithContext(ctx).
		Model(&inventory.InventoryItem{}).
		Where("LOWER(name) LIKE LOWER(?)", "%"+name+"%").
		Order("price ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates an item. A unique-index violation (two writers
// racing past the duplicate pre-check) surfaces as a ConflictError.
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("DUPLICATE_ITEM", "An item with the same name and price already exists")
		}
		return err
	}
	return nil
}

// SaveWithVersion updates with an optimistic version check. Zero affected
// rows means another transaction won the race.
func (r *GormInventoryItemRepository) SaveWithVersion(ctx context.Context, item *inventory.InventoryItem) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"name":             item.Name,
			"quantity":         item.Quantity,
			"price":            item.Price,
			"minimum_quantity": item.MinimumQuantity,
			"supplier_id":      item.SupplierID,
			"updated_by":       item.UpdatedBy,
			"updated_at":       item.UpdatedAt,
			"version":          item.Version,
		})

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError("DUPLICATE_ITEM", "An item with the same name and price already exists")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes an item. Its ledger entries are untouched.
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.InventoryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts items matching the filter
func (r *GormInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&inventory.InventoryItem{})
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalPerSupplier sums live quantities per supplier, largest holding first
func (r *GormInventoryItemRepository) TotalPerSupplier(ctx context.Context) ([]inventory.SupplierStock, error) {
	var totals []inventory.SupplierStock
	err := r.db.WithContext(ctx).
		Model(&inventory.InventoryItem{}).
		Select("suppliers.id AS supplier_id, suppliers.name AS supplier_name, SUM(inventory_items.quantity) AS total_quantity").
		Joins("JOIN suppliers ON suppliers.id = inventory_items.supplier_id").
		Group("suppliers.id, suppliers.name").
		Order("total_quantity DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+filter.Search+"%")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

var _ inventory.InventoryItemRepository = (*GormInventoryItemRepository)(nil)
