package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// StockHistoryService is the read-side API over the ledger. It has no write
// path: entries are appended exclusively by the mutation coordinator.
type StockHistoryService struct {
	historyRepo inventory.StockHistoryRepository
}

// NewStockHistoryService creates a new StockHistoryService
func NewStockHistoryService(historyRepo inventory.StockHistoryRepository) *StockHistoryService {
	return &StockHistoryService{historyRepo: historyRepo}
}

// GetByItem returns an item's full timeline, oldest first. Entries of
// deleted items are still returned.
func (s *StockHistoryService) GetByItem(ctx context.Context, itemID uuid.UUID, filter HistoryListFilter) ([]StockHistoryResponse, error) {
	entries, err := s.historyRepo.FindByItem(ctx, itemID, toHistoryDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToStockHistoryResponses(entries), nil
}

// GetByReason returns entries with the given reason, newest first
func (s *StockHistoryService) GetByReason(ctx context.Context, reason inventory.StockChangeReason, filter HistoryListFilter) ([]StockHistoryResponse, error) {
	if !reason.IsValid() {
		return nil, shared.NewValidationError("INVALID_REASON", "Unknown stock change reason: "+reason.String())
	}
	entries, err := s.historyRepo.FindByReason(ctx, reason, toHistoryDomainFilter(filter))
	if err != nil {
		return nil, err
	}
	return ToStockHistoryResponses(entries), nil
}

// FindFiltered returns entries matching the combined filter, newest first
func (s *StockHistoryService) FindFiltered(ctx context.Context, filter HistoryListFilter) ([]StockHistoryResponse, error) {
	domainFilter := inventory.HistoryFilter{
		Filter:     toHistoryDomainFilter(filter),
		ItemID:     filter.ItemID,
		SupplierID: filter.SupplierID,
		CreatedBy:  filter.CreatedBy,
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		MinDelta:   filter.MinDelta,
		MaxDelta:   filter.MaxDelta,
	}
	if filter.Reason != "" {
		reason := inventory.StockChangeReason(filter.Reason)
		if !reason.IsValid() {
			return nil, shared.NewValidationError("INVALID_REASON", "Unknown stock change reason: "+filter.Reason)
		}
		domainFilter.Reason = &reason
	}

	entries, err := s.historyRepo.FindFiltered(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToStockHistoryResponses(entries), nil
}

// CountByItem returns the number of ledger entries for an item
func (s *StockHistoryService) CountByItem(ctx context.Context, itemID uuid.UUID) (int64, error) {
	return s.historyRepo.CountByItem(ctx, itemID)
}

func toHistoryDomainFilter(filter HistoryListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	return domainFilter
}
