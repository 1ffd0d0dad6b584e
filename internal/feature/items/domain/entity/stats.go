package entity

import (
	"math"

	"github.com/shopspring/decimal"
)

// CategoryStats aggregates the items of one category.
type CategoryStats struct {
	Count    int64
	Quantity int64
	Value    decimal.Decimal
}

// Stats aggregates a user's whole inventory.
type Stats struct {
	TotalItems    int64
	TotalQuantity int64
	TotalValue    decimal.Decimal
	Breakdown     map[Category]CategoryStats
}

// ComputeStats sums count, quantity and price×quantity over items, overall and per category.
func ComputeStats(items []Item) Stats {
	s := Stats{
		TotalValue: decimal.Zero,
		Breakdown:  make(map[Category]CategoryStats),
	}
	for _, it := range items {
		v := it.Value()
		s.TotalItems++
		s.TotalQuantity = addQuantity(s.TotalQuantity, it.Quantity)
		s.TotalValue = s.TotalValue.Add(v)

		cs, ok := s.Breakdown[it.Category]
		if !ok {
			cs.Value = decimal.Zero
		}
		cs.Count++
		cs.Quantity = addQuantity(cs.Quantity, it.Quantity)
		cs.Value = cs.Value.Add(v)
		s.Breakdown[it.Category] = cs
	}
	return s
}

// addQuantity sums non-negative quantities, saturating at math.MaxInt64.
func addQuantity(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
