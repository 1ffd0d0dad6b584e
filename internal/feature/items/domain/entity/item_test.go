package entity

import (
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategory_Valid(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		assert.True(t, c.Valid(), string(c))
	}
	for _, c := range []Category{"", "electronics", "Toys", " Food"} {
		assert.False(t, c.Valid(), string(c))
	}
}

func TestClampQuantity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int64
		delta   int64
		want    int64
	}{
		{"increase", 5, 3, 8},
		{"decrease", 5, -3, 2},
		{"decrease to exactly zero", 5, -5, 0},
		{"below zero clamps", 5, -10, 0},
		{"zero stays zero", 0, -1, 0},
		{"no change", 7, 0, 7},
		{"increase up to the cap", MaxQuantity - 1, 1, MaxQuantity},
		{"increase past the cap saturates", MaxQuantity, 1, MaxQuantity},
		{"huge current saturates instead of wrapping", math.MaxInt64, 1, MaxQuantity},
		{"huge delta saturates", 5, math.MaxInt64, MaxQuantity},
		{"most negative delta clamps at zero", 5, math.MinInt64, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ClampQuantity(tt.current, tt.delta))
		})
	}
}

func TestItemInput_Validate(t *testing.T) {
	t.Parallel()

	valid := ItemInput{
		Name:     "Laptop",
		Quantity: 5,
		Price:    decimal.RequireFromString("999.99"),
		Category: CategoryElectronics,
	}

	tests := []struct {
		name       string
		mutate     func(in *ItemInput)
		wantFields []string
	}{
		{"valid input", func(in *ItemInput) {}, nil},
		{"zero quantity and price are allowed", func(in *ItemInput) { in.Quantity = 0; in.Price = decimal.Zero }, nil},
		{"short name", func(in *ItemInput) { in.Name = "L" }, []string{"itemName"}},
		{"negative quantity", func(in *ItemInput) { in.Quantity = -1 }, []string{"quantity"}},
		{"quantity at the cap", func(in *ItemInput) { in.Quantity = MaxQuantity }, nil},
		{"quantity over the cap", func(in *ItemInput) { in.Quantity = MaxQuantity + 1 }, []string{"quantity"}},
		{"negative price", func(in *ItemInput) { in.Price = decimal.RequireFromString("-0.01") }, []string{"price"}},
		{"unknown category", func(in *ItemInput) { in.Category = "Toys" }, []string{"category"}},
		{"long description", func(in *ItemInput) { in.Description = strings.Repeat("a", 501) }, []string{"description"}},
		{
			name: "every field at once",
			mutate: func(in *ItemInput) {
				*in = ItemInput{Name: "", Quantity: -2, Price: decimal.NewFromInt(-1), Category: "", Description: strings.Repeat("x", 600)}
			},
			wantFields: []string{"itemName", "quantity", "price", "category", "description"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := valid
			tt.mutate(&in)

			fields := in.Validate()

			assert.Len(t, fields, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, fields, f)
			}
		})
	}
}

func TestItemInput_Normalize(t *testing.T) {
	t.Parallel()

	in := ItemInput{Name: "  Desk ", Description: "\toak\n"}.Normalize()

	assert.Equal(t, "Desk", in.Name)
	assert.Equal(t, "\toak\n", in.Description, "description is stored as sent")
}

func TestValidateDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int64
		valid bool
	}{
		{0, true},
		{-MaxQuantity, true},
		{MaxQuantity, true},
		{MaxQuantity + 1, false},
		{-MaxQuantity - 1, false},
		{math.MaxInt64, false},
		{math.MinInt64, false},
	}
	for _, tt := range tests {
		fields := ValidateDelta(tt.delta)
		if tt.valid {
			assert.Empty(t, fields, "delta %d", tt.delta)
		} else {
			assert.Contains(t, fields, "delta", "delta %d", tt.delta)
		}
	}
}

func TestComputeStats(t *testing.T) {
	t.Parallel()

	t.Run("empty inventory", func(t *testing.T) {
		s := ComputeStats(nil)

		assert.Zero(t, s.TotalItems)
		assert.Zero(t, s.TotalQuantity)
		assert.True(t, s.TotalValue.IsZero())
		assert.Empty(t, s.Breakdown)
	})

	t.Run("single laptop", func(t *testing.T) {
		s := ComputeStats([]Item{{Name: "Laptop", Quantity: 5, Price: decimal.RequireFromString("999.99"), Category: CategoryElectronics}})

		assert.Equal(t, int64(1), s.TotalItems)
		assert.Equal(t, int64(5), s.TotalQuantity)
		assert.Equal(t, "4999.95", s.TotalValue.String())
	})

	t.Run("quantity totals saturate instead of wrapping", func(t *testing.T) {
		s := ComputeStats([]Item{
			{Quantity: math.MaxInt64, Price: decimal.Zero, Category: CategoryOther},
			{Quantity: 2, Price: decimal.Zero, Category: CategoryOther},
		})

		assert.Equal(t, int64(math.MaxInt64), s.TotalQuantity)
		assert.Equal(t, int64(math.MaxInt64), s.Breakdown[CategoryOther].Quantity)
	})

	t.Run("per-category breakdown sums to totals", func(t *testing.T) {
		items := []Item{
			{Quantity: 3, Price: decimal.RequireFromString("0.10"), Category: CategoryFood},
			{Quantity: 7, Price: decimal.RequireFromString("0.20"), Category: CategoryFood},
			{Quantity: 2, Price: decimal.RequireFromString("49.95"), Category: CategoryTools},
			{Quantity: 0, Price: decimal.RequireFromString("1000"), Category: CategoryTools},
		}

		s := ComputeStats(items)

		assert.Equal(t, int64(4), s.TotalItems)
		assert.Equal(t, int64(12), s.TotalQuantity)
		assert.Equal(t, "101.6", s.TotalValue.String())

		food := s.Breakdown[CategoryFood]
		assert.Equal(t, int64(2), food.Count)
		assert.Equal(t, int64(10), food.Quantity)
		assert.True(t, food.Value.Equal(decimal.RequireFromString("1.7")), food.Value.String())

		tools := s.Breakdown[CategoryTools]
		assert.Equal(t, int64(2), tools.Count)
		assert.True(t, tools.Value.Equal(decimal.RequireFromString("99.9")), tools.Value.String())

		sum := decimal.Zero
		for _, cs := range s.Breakdown {
			sum = sum.Add(cs.Value)
		}
		assert.True(t, sum.Equal(s.TotalValue))
	})
}
