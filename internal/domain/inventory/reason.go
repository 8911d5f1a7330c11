package inventory

// StockChangeReason classifies why a stock history entry was created.
// Stored as string for forward compatibility with reporting queries.
type StockChangeReason string

const (
	// ReasonInitialStock is the initial quantity entered when an item is first created
	ReasonInitialStock StockChangeReason = "INITIAL_STOCK"
	// ReasonPurchase represents stock bought in from a supplier
	ReasonPurchase StockChangeReason = "PURCHASE"
	// ReasonSale represents stock leaving through a sale
	ReasonSale StockChangeReason = "SALE"
	// ReasonSold represents stock sold to a customer (outbound)
	ReasonSold StockChangeReason = "SOLD"
	// ReasonManualUpdate is a manual correction performed by a user
	ReasonManualUpdate StockChangeReason = "MANUAL_UPDATE"
	// ReasonPriceChange records a unit price change with no quantity movement
	ReasonPriceChange StockChangeReason = "PRICE_CHANGE"
	// ReasonScrapped means the item was scrapped due to damage or policy
	ReasonScrapped StockChangeReason = "SCRAPPED"
	// ReasonDestroyed means the item was destroyed beyond use
	ReasonDestroyed StockChangeReason = "DESTROYED"
	// ReasonDamaged means the item is damaged but not yet scrapped or returned
	ReasonDamaged StockChangeReason = "DAMAGED"
	// ReasonExpired means the item passed its expiration date
	ReasonExpired StockChangeReason = "EXPIRED"
	// ReasonLost means the item went missing during handling or storage
	ReasonLost StockChangeReason = "LOST"
	// ReasonReturnedToSupplier means stock was sent back to the supplier
	ReasonReturnedToSupplier StockChangeReason = "RETURNED_TO_SUPPLIER"
	// ReasonReturnedByCustomer means stock came back from a customer
	ReasonReturnedByCustomer StockChangeReason = "RETURNED_BY_CUSTOMER"
)

// String returns the string representation of the reason
func (r StockChangeReason) String() string {
	return string(r)
}

// IsValid returns true if the reason is a member of the closed set
func (r StockChangeReason) IsValid() bool {
	switch r {
	case ReasonInitialStock,
		ReasonPurchase,
		ReasonSale,
		ReasonSold,
		ReasonManualUpdate,
		ReasonPriceChange,
		ReasonScrapped,
		ReasonDestroyed,
		ReasonDamaged,
		ReasonExpired,
		ReasonLost,
		ReasonReturnedToSupplier,
		ReasonReturnedByCustomer:
		return true
	}
	return false
}

// AllowsDeletion returns true for the write-off subset that may be used when
// deleting an item. All other reasons are valid for adjustments only.
func (r StockChangeReason) AllowsDeletion() bool {
	switch r {
	case ReasonScrapped,
		ReasonDestroyed,
		ReasonDamaged,
		ReasonExpired,
		ReasonLost,
		ReasonReturnedToSupplier:
		return true
	}
	return false
}

// DeletionReasons returns the write-off subset permitted for item deletion
func DeletionReasons() []StockChangeReason {
	return []StockChangeReason{
		ReasonScrapped,
		ReasonDestroyed,
		ReasonDamaged,
		ReasonExpired,
		ReasonLost,
		ReasonReturnedToSupplier,
	}
}
