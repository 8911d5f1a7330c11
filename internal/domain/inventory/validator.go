package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// Validation rules for item and ledger writes. All functions are pure and
// side-effect free; the first violated rule wins.

// ValidateItemBase checks the invariants shared by create and update
func ValidateItemBase(name string, quantity int, price decimal.Decimal, supplierID uuid.UUID) *shared.DomainError {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Item name cannot be blank")
	}
	if quantity < 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if err := ValidatePrice(price); err != nil {
		return err
	}
	if supplierID == uuid.Nil {
		return shared.NewValidationError("MISSING_SUPPLIER", "Supplier is required")
	}
	return nil
}

// ValidatePrice requires a strictly positive unit price
func ValidatePrice(price decimal.Decimal) *shared.DomainError {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_PRICE", "Price must be greater than zero")
	}
	return nil
}

// ValidateFinalQuantity rejects any mutation that would drive stock negative
func ValidateFinalQuantity(finalQuantity int) *shared.DomainError {
	if finalQuantity < 0 {
		return shared.NewValidationError("NEGATIVE_STOCK", "Resulting quantity cannot be negative")
	}
	return nil
}

// ValidateDeletionReason restricts item deletion to the write-off subset of
// reasons
func ValidateDeletionReason(reason StockChangeReason) *shared.DomainError {
	if !reason.IsValid() {
		return shared.NewValidationError("INVALID_REASON", "Unknown stock change reason: "+reason.String())
	}
	if !reason.AllowsDeletion() {
		return shared.NewValidationError("REASON_NOT_ALLOWED", "Reason "+reason.String()+" is not valid for item deletion")
	}
	return nil
}

// ValidateHistoryEntry checks a ledger entry before it is appended. Zero
// deltas are legal: price changes and explicitly recorded no-op adjustments
// both carry one.
func ValidateHistoryEntry(delta int, reason StockChangeReason, createdBy string) *shared.DomainError {
	if !reason.IsValid() {
		return shared.NewValidationError("INVALID_REASON", "Unknown stock change reason: "+reason.String())
	}
	if strings.TrimSpace(createdBy) == "" {
		return shared.NewValidationError("MISSING_ACTOR", "Ledger entries require an acting user")
	}
	return nil
}
