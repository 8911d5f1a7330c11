package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/smartsupplypro/inventory/internal/domain/inventory"
	"github.com/smartsupplypro/inventory/internal/domain/shared"
)

// Reason buckets for the financial summary. Inbound customer returns and
// outbound supplier returns are reported separately from purchases and cost
// of goods sold; stock destroyed in any form is a write-off.
var (
	returnInReasons = map[inventory.StockChangeReason]struct{}{
		inventory.ReasonReturnedByCustomer: {},
	}
	writeOffReasons = map[inventory.StockChangeReason]struct{}{
		inventory.ReasonDamaged:   {},
		inventory.ReasonDestroyed: {},
		inventory.ReasonScrapped:  {},
		inventory.ReasonExpired:   {},
		inventory.ReasonLost:      {},
	}
)

// wacState is one item's running quantity and weighted average cost
type wacState struct {
	qty     int64
	avgCost decimal.Decimal
}

// applyInbound blends incoming stock into the running average:
// newAvg = (oldQty*oldAvg + inQty*unitCost) / (oldQty + inQty)
func applyInbound(st wacState, qtyIn int64, unitCost decimal.Decimal) wacState {
	newQty := st.qty + qtyIn
	if newQty == 0 {
		return wacState{avgCost: decimal.Zero}
	}
	held := st.avgCost.Mul(decimal.NewFromInt(st.qty))
	incoming := unitCost.Mul(decimal.NewFromInt(qtyIn))
	return wacState{
		qty:     newQty,
		avgCost: held.Add(incoming).DivRound(decimal.NewFromInt(newQty), wacScale),
	}
}

// issueAt consumes stock at the current average cost. The average is
// unchanged; quantity is clamped at zero when the issue exceeds the holding.
func issueAt(st wacState, qtyOut int64) (wacState, decimal.Decimal) {
	newQty := st.qty - qtyOut
	if newQty < 0 {
		newQty = 0
	}
	cost := st.avgCost.Mul(decimal.NewFromInt(qtyOut))
	return wacState{qty: newQty, avgCost: st.avgCost}, cost
}

// FinancialSummary replays the ledger under the weighted-average-cost method
// and reports the period's opening state, purchases, customer returns, cost
// of goods sold, write-offs and ending state. Both bounds are required and
// inclusive; returns to the supplier are counted as negative purchases.
func (s *AnalyticsService) FinancialSummary(ctx context.Context, from, to *time.Time, supplierID *uuid.UUID) (*FinancialSummary, error) {
	if from == nil || to == nil {
		return nil, shared.NewValidationError("MISSING_DATE_RANGE", "From and to dates are required")
	}
	if from.After(*to) {
		return nil, shared.NewValidationError("INVALID_DATE_RANGE", "From date must be on or before to date")
	}

	start := startOfDay(*from)
	end := endOfDay(*to)

	events, err := s.historyRepo.FindForValuation(ctx, end, supplierID)
	if err != nil {
		return nil, err
	}

	summary := &FinancialSummary{
		Method:        "WAC",
		FromDate:      from.Format("2006-01-02"),
		ToDate:        to.Format("2006-01-02"),
		OpeningValue:  decimal.Zero,
		PurchasesCost: decimal.Zero,
		ReturnsInCost: decimal.Zero,
		COGSCost:      decimal.Zero,
		WriteOffCost:  decimal.Zero,
		EndingValue:   decimal.Zero,
	}

	// Replay everything before the period to establish each item's opening
	// quantity and average cost.
	state := make(map[uuid.UUID]wacState)
	for _, e := range events {
		if !e.CreatedAt.Before(start) {
			continue
		}
		st := state[e.ItemID]
		switch {
		case e.Delta > 0:
			state[e.ItemID] = applyInbound(st, int64(e.Delta), e.PriceAtChange)
		case e.Delta < 0:
			next, _ := issueAt(st, int64(-e.Delta))
			state[e.ItemID] = next
		}
	}
	for _, st := range state {
		summary.OpeningQty += st.qty
		summary.OpeningValue = summary.OpeningValue.Add(st.avgCost.Mul(decimal.NewFromInt(st.qty)))
	}

	// Categorize the period's events into the financial buckets.
	for _, e := range events {
		if e.CreatedAt.Before(start) {
			continue
		}
		st := state[e.ItemID]

		if e.Delta > 0 {
			qty := int64(e.Delta)
			unit := e.PriceAtChange
			state[e.ItemID] = applyInbound(st, qty, unit)

			if _, ok := returnInReasons[e.Reason]; ok {
				summary.ReturnsInQty += qty
				summary.ReturnsInCost = summary.ReturnsInCost.Add(unit.Mul(decimal.NewFromInt(qty)))
			} else {
				summary.PurchasesQty += qty
				summary.PurchasesCost = summary.PurchasesCost.Add(unit.Mul(decimal.NewFromInt(qty)))
			}
			continue
		}

		if e.Delta < 0 {
			qty := int64(-e.Delta)
			next, cost := issueAt(st, qty)
			state[e.ItemID] = next

			switch {
			case e.Reason == inventory.ReasonReturnedToSupplier:
				summary.PurchasesQty -= qty
				summary.PurchasesCost = summary.PurchasesCost.Sub(cost)
			case isWriteOff(e.Reason):
				summary.WriteOffQty += qty
				summary.WriteOffCost = summary.WriteOffCost.Add(cost)
			default:
				summary.COGSQty += qty
				summary.COGSCost = summary.COGSCost.Add(cost)
			}
		}
	}

	for _, st := range state {
		summary.EndingQty += st.qty
		summary.EndingValue = summary.EndingValue.Add(st.avgCost.Mul(decimal.NewFromInt(st.qty)))
	}

	return summary, nil
}

func isWriteOff(reason inventory.StockChangeReason) bool {
	_, ok := writeOffReasons[reason]
	return ok
}

// startOfDay returns midnight of the instant's calendar day
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
