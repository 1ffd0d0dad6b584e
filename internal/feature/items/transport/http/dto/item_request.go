// Package dto はitemsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"github.com/shopspring/decimal"

	"inventory_backend/internal/feature/items/domain/entity"
)

// ItemRequest は POST /items と PUT /items/:id のリクエストボディです。
// quantityとpriceは0を有効な値として受け付けるためポインタで受け取ります。
// priceはJSONの数値・文字列のどちらでも受け付け、桁を落とさずにdecimalへ読み込みます。
// quantityの上限はentity.MaxQuantityと一致させます。
type ItemRequest struct {
	ItemName    string           `json:"itemName"    binding:"required,min=2,max=255"`
	Quantity    *int64           `json:"quantity"    binding:"required,gte=0,lte=1000000000000"`
	Price       *decimal.Decimal `json:"price"       binding:"required,gte=0"`
	Category    string           `json:"category"    binding:"required,oneof=Electronics Clothing Food Furniture Tools Other"`
	Description string           `json:"description" binding:"max=500"`
}

// ToInput converts the bound request into the domain input.
func (r ItemRequest) ToInput() entity.ItemInput {
	in := entity.ItemInput{
		Name:        r.ItemName,
		Category:    entity.Category(r.Category),
		Description: r.Description,
	}
	if r.Quantity != nil {
		in.Quantity = *r.Quantity
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	return in
}

// AdjustQuantityRequest は PATCH /items/:id/quantity のリクエストボディです。
type AdjustQuantityRequest struct {
	Delta *int64 `json:"delta" binding:"required,gte=-1000000000000,lte=1000000000000"`
}
