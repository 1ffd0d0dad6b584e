// Package entity defines the domain models for the items feature.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Category is one of the fixed inventory categories.
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryFood        Category = "Food"
	CategoryFurniture   Category = "Furniture"
	CategoryTools       Category = "Tools"
	CategoryOther       Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryFood,
	CategoryFurniture,
	CategoryTools,
	CategoryOther,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// Item is a stocked inventory record owned by exactly one user.
type Item struct {
	ID          uuid.UUID
	UserID      uuid.UUID       // owning user
	Name        string          // at least 2 characters
	Quantity    int64           // never negative
	Price       decimal.Decimal // unit price, never negative
	Category    Category
	Description string // optional, at most 500 characters
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Value is price times quantity at full precision.
func (i Item) Value() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

// MaxQuantity is the largest quantity an item can hold and the largest magnitude of a single adjustment.
// With both bounded, quantity+delta never overflows int64, in Go or in SQL.
const MaxQuantity int64 = 1_000_000_000_000

// ClampQuantity applies delta to current and keeps the result within [0, MaxQuantity].
// It saturates rather than wrapping for any int64 inputs with current >= 0.
func ClampQuantity(current, delta int64) int64 {
	if delta > 0 && current > MaxQuantity-delta {
		return MaxQuantity
	}
	next := current + delta
	switch {
	case next < 0:
		return 0
	case next > MaxQuantity:
		return MaxQuantity
	}
	return next
}
