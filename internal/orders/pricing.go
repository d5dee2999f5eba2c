package orders

import (
	"github.com/shopspring/decimal"

	"github.com/manuslibros/libros-backend/pkg/types"
)

var oneHundred = decimal.NewFromInt(100)

// orderTotals captures the derived monetary fields stored on an order.
type orderTotals struct {
	SubtotalCents   int64
	TotalValueCents int64
	TotalCostCents  int64
	ProfitCents     int64
}

// computeTotals derives the order totals from the item snapshots.
// Shipping inflates what the customer pays but never counts as margin.
func computeTotals(items types.OrderItems, discountCents, shippingCents int64) orderTotals {
	subtotal := items.SubtotalCents()
	cost := items.CostCents()

	totalValue := subtotal + shippingCents - discountCents
	if totalValue < 0 {
		totalValue = 0
	}

	return orderTotals{
		SubtotalCents:   subtotal,
		TotalValueCents: totalValue,
		TotalCostCents:  cost,
		ProfitCents:     (subtotal - discountCents) - cost,
	}
}

// commissionCents converts a percentage rate into whole cents of commission.
// Negative profit never produces a negative commission.
func commissionCents(profitCents int64, rate decimal.Decimal) int64 {
	if rate.IsZero() {
		return 0
	}
	commission := decimal.NewFromInt(profitCents).
		Mul(rate).
		Div(oneHundred).
		Round(0).
		IntPart()
	if commission < 0 {
		return 0
	}
	return commission
}

// rediscountedTotals applies a discount change to an order already priced.
// The original totals are reconstructed by backing out the prior discount.
func rediscountedTotals(oldTotalValue, oldProfit, oldDiscount, newDiscount int64) (int64, int64) {
	totalValue := (oldTotalValue + oldDiscount) - newDiscount
	if totalValue < 0 {
		totalValue = 0
	}
	profit := (oldProfit + oldDiscount) - newDiscount
	return totalValue, profit
}
