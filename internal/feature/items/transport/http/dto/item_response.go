package dto

import (
	"time"

	"inventory_backend/internal/feature/items/domain/entity"
)

// ItemResponse はクライアントに返すアイテムの表現です。
type ItemResponse struct {
	ID          string    `json:"id"`
	ItemName    string    `json:"itemName"`
	Quantity    int64     `json:"quantity"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemListResponse は GET /items のレスポンスです。
type ItemListResponse struct {
	Count int            `json:"count"`
	Items []ItemResponse `json:"items"`
}

// CategoryStatsResponse is one entry of the statistics breakdown.
type CategoryStatsResponse struct {
	Count    int64   `json:"count"`
	Quantity int64   `json:"quantity"`
	Value    float64 `json:"value"`
}

// StatsResponse は GET /stats のレスポンスです。
type StatsResponse struct {
	TotalItems        int64                            `json:"totalItems"`
	TotalQuantity     int64                            `json:"totalQuantity"`
	TotalValue        float64                          `json:"totalValue"`
	CategoryBreakdown map[string]CategoryStatsResponse `json:"categoryBreakdown"`
}

// NewItemResponse converts a domain item into its JSON form.
func NewItemResponse(it *entity.Item) ItemResponse {
	return ItemResponse{
		ID:          it.ID.String(),
		ItemName:    it.Name,
		Quantity:    it.Quantity,
		Price:       it.Price.InexactFloat64(),
		Category:    string(it.Category),
		Description: it.Description,
		UserID:      it.UserID.String(),
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// NewItemListResponse wraps items with their count. An empty inventory renders as [] rather than null.
func NewItemListResponse(items []entity.Item) ItemListResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewItemResponse(&items[i]))
	}
	return ItemListResponse{Count: len(out), Items: out}
}

// NewStatsResponse renders aggregated statistics. Decimal totals are rounded only here, at the JSON boundary.
func NewStatsResponse(s *entity.Stats) StatsResponse {
	breakdown := make(map[string]CategoryStatsResponse, len(s.Breakdown))
	for cat, cs := range s.Breakdown {
		breakdown[string(cat)] = CategoryStatsResponse{
			Count:    cs.Count,
			Quantity: cs.Quantity,
			Value:    cs.Value.InexactFloat64(),
		}
	}
	return StatsResponse{
		TotalItems:        s.TotalItems,
		TotalQuantity:     s.TotalQuantity,
		TotalValue:        s.TotalValue.InexactFloat64(),
		CategoryBreakdown: breakdown,
	}
}
