package types

import "github.com/google/uuid"

// OrderItem is the snapshot of a catalog entry at the moment an order is placed.
// Prices and costs are frozen here so later catalog edits never rewrite history.
type OrderItem struct {
	BookID         uuid.UUID `json:"book_id"`
	Title          string    `json:"title"`
	Quantity       int       `json:"quantity"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	UnitCostCents  int64     `json:"unit_cost_cents"`
	IsBundle       bool      `json:"is_bundle,omitempty"`
}

// OrderItems is the jsonb-serialized item list on an order.
type OrderItems []OrderItem

// SubtotalCents sums quantity times unit price across all items.
func (items OrderItems) SubtotalCents() int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.UnitPriceCents
	}
	return total
}

// CostCents sums quantity times unit cost across all items.
func (items OrderItems) CostCents() int64 {
	var total int64
	for _, item := range items {
		total += int64(item.Quantity) * item.UnitCostCents
	}
	return total
}

// Units sums the quantities across all items.
func (items OrderItems) Units() int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
