package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/partner"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// SystemActor is recorded when no authenticated user is present
const SystemActor = "system"

// InventoryItemService coordinates all item mutations. Every mutating
// operation runs as one atomic unit: the item write and exactly one ledger
// append commit together or not at all.
type InventoryItemService struct {
	scope        TransactionScope
	itemRepo     inventory.InventoryItemRepository
	supplierRepo partner.SupplierRepository
}

// NewInventoryItemService creates a new InventoryItemService. itemRepo is
// used for reads outside transactions; all writes go through the scope.
func NewInventoryItemService(
	scope TransactionScope,
	itemRepo inventory.InventoryItemRepository,
	supplierRepo partner.SupplierRepository,
) *InventoryItemService {
	return &InventoryItemService{
		scope:        scope,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
	}
}

// GetByID retrieves an item by ID
func (s *InventoryItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves items with filtering and pagination
func (s *InventoryItemService) List(ctx context.Context, filter ItemListFilter) ([]ItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToItemResponses(items), total, nil
}

// SearchByName retrieves items whose name contains the term, cheapest first
func (s *InventoryItemService) SearchByName(ctx context.Context, name string, filter ItemListFilter) ([]ItemResponse, error) {
	items, err := s.itemRepo.SearchByName(ctx, name, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}

// Create creates an item and seeds its ledger with an INITIAL_STOCK entry
// carrying the initial quantity
func (s *InventoryItemService) Create(ctx context.Context, req CreateItemRequest, actor string) (*ItemResponse, error) {
	actor = resolveActor(actor)

	item, err := inventory.NewInventoryItem(req.Name, req.Quantity, req.Price, req.MinimumQuantity, req.SupplierID, actor)
	if err != nil {
		return nil, err
	}
	if err := s.assertSupplierExists(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		duplicate, err := repos.ItemRepo().FindDuplicate(ctx, item.Name, item.Price, uuid.Nil)
		if err != nil {
			return err
		}
		if duplicate != nil {
			return shared.NewConflictError("DUPLICATE_ITEM", "An item with the same name and price already exists")
		}

		if err := repos.ItemRepo().Save(ctx, item); err != nil {
			return err
		}

		// A zero-quantity item has an empty ledger; the sum invariant holds.
		if item.Quantity == 0 {
			return nil
		}
		entry, err := inventory.NewStockHistory(item.ID, item.SupplierID, item.Quantity, inventory.ReasonInitialStock, actor, item.Price)
		if err != nil {
			return err
		}
		return repos.HistoryRepo().Append(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Update applies the provided mutable fields. A quantity change is recorded
// as one MANUAL_UPDATE entry with the signed difference; a price-only change
// is recorded as one PRICE_CHANGE entry so the audit trail has no gap. An
// update that changes neither appends nothing.
func (s *InventoryItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest, actor string) (*ItemResponse, error) {
	actor = resolveActor(actor)

	if req.Price != nil {
		if err := inventory.ValidatePrice(*req.Price); err != nil {
			return nil, err
		}
	}
	if req.SupplierID != nil {
		if err := s.assertSupplierExists(ctx, *req.SupplierID); err != nil {
			return nil, err
		}
	}

	var updated *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		newName := item.Name
		if req.Name != nil {
			newName = *req.Name
		}
		newPrice := item.Price
		if req.Price != nil {
			newPrice = *req.Price
		}
		priceChanged := !newPrice.Equal(item.Price)

		if newName != item.Name || priceChanged {
			duplicate, err := repos.ItemRepo().FindDuplicate(ctx, newName, newPrice, item.ID)
			if err != nil {
				return err
			}
			if duplicate != nil {
				return shared.NewConflictError("DUPLICATE_ITEM", "An item with the same name and price already exists")
			}
		}

		quantityDiff := 0
		if req.Quantity != nil {
			quantityDiff = *req.Quantity - item.Quantity
		}

		if req.Name != nil {
			if err := item.Rename(*req.Name, actor); err != nil {
				return err
			}
		}
		if priceChanged {
			if err := item.ChangePrice(newPrice, actor); err != nil {
				return err
			}
		}
		if quantityDiff != 0 {
			if err := item.AdjustQuantity(quantityDiff, actor); err != nil {
				return err
			}
		}
		if req.MinimumQuantity != nil {
			item.SetMinimumQuantity(*req.MinimumQuantity, actor)
		}
		if req.SupplierID != nil {
			item.SupplierID = *req.SupplierID
		}

		item.IncrementVersion()
		if err := repos.ItemRepo().SaveWithVersion(ctx, item); err != nil {
			return err
		}

		if quantityDiff != 0 {
			entry, err := inventory.NewStockHistory(item.ID, item.SupplierID, quantityDiff, inventory.ReasonManualUpdate, actor, item.Price)
			if err != nil {
				return err
			}
			if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
				return err
			}
		} else if priceChanged {
			entry, err := inventory.NewStockHistory(item.ID, item.SupplierID, 0, inventory.ReasonPriceChange, actor, item.Price)
			if err != nil {
				return err
			}
			if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
				return err
			}
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(updated)
	return &response, nil
}

// AdjustQuantity applies a signed delta and always records one ledger entry
// with the caller-supplied reason, even when the delta is zero
func (s *InventoryItemService) AdjustQuantity(ctx context.Context, id uuid.UUID, req AdjustQuantityRequest, actor string) (*ItemResponse, error) {
	actor = resolveActor(actor)

	reason := inventory.StockChangeReason(req.Reason)
	if derr := inventory.ValidateHistoryEntry(req.Delta, reason, actor); derr != nil {
		return nil, derr
	}

	var updated *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := item.AdjustQuantity(req.Delta, actor); err != nil {
			return err
		}
		item.IncrementVersion()
		if err := repos.ItemRepo().SaveWithVersion(ctx, item); err != nil {
			return err
		}

		entry, err := inventory.NewStockHistory(item.ID, item.SupplierID, req.Delta, reason, actor, item.Price)
		if err != nil {
			return err
		}
		if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(updated)
	return &response, nil
}

// UpdatePrice changes the unit price without touching quantity and always
// records one PRICE_CHANGE entry with the new price as the snapshot
func (s *InventoryItemService) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal, actor string) (*ItemResponse, error) {
	actor = resolveActor(actor)

	if err := inventory.ValidatePrice(price); err != nil {
		return nil, err
	}

	var updated *inventory.InventoryItem
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := item.ChangePrice(price, actor); err != nil {
			return err
		}
		item.IncrementVersion()
		if err := repos.ItemRepo().SaveWithVersion(ctx, item); err != nil {
			return err
		}

		entry, err := inventory.NewStockHistory(item.ID, item.SupplierID, 0, inventory.ReasonPriceChange, actor, item.Price)
		if err != nil {
			return err
		}
		if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(updated)
	return &response, nil
}

// Delete records a final write-off entry negating the current quantity, then
// hard-deletes the item. The ledger survives as the permanent record.
func (s *InventoryItemService) Delete(ctx context.Context, id uuid.UUID, reason inventory.StockChangeReason, actor string) error {
	actor = resolveActor(actor)

	// Rejected before anything is loaded or written
	if derr := inventory.ValidateDeletionReason(reason); derr != nil {
		return derr
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.ItemRepo().FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		entry, err := inventory.NewStockHistory(item.ID, item.SupplierID, -item.Quantity, reason, actor, item.Price)
		if err != nil {
			return err
		}
		if err := repos.HistoryRepo().Append(ctx, entry); err != nil {
			return err
		}

		return repos.ItemRepo().Delete(ctx, item.ID)
	})
}

func (s *InventoryItemService) assertSupplierExists(ctx context.Context, supplierID uuid.UUID) error {
	exists, err := s.supplierRepo.ExistsByID(ctx, supplierID)
	if err != nil {
		return err
	}
	if !exists {
		return shared.NewValidationError("UNKNOWN_SUPPLIER", "Supplier does not exist")
	}
	return nil
}

func resolveActor(actor string) string {
	if actor == "" {
		return SystemActor
	}
	return actor
}

func toDomainFilter(filter ItemListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
