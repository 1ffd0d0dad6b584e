// Package handler はitemsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inventory_backend/internal/api"
	"inventory_backend/internal/feature/items/domain/entity"
	"inventory_backend/internal/feature/items/transport/http/dto"
	"inventory_backend/internal/feature/items/usecase"
	jwtmw "inventory_backend/internal/platform/jwt"
)

// ItemUsecase はアイテム操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ItemUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, in entity.ItemInput) (*entity.Item, error)
	List(ctx context.Context, ownerID uuid.UUID, category string) ([]entity.Item, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, in entity.ItemInput) (*entity.Item, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error)
	AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int64) (*entity.Item, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (*entity.Stats, error)
}

// ItemHandler は在庫アイテムと統計のHTTPリクエストを処理します。
// すべての操作はAuthRequiredミドルウェアが設定したIdentityのユーザーに限定されます。
type ItemHandler struct {
	items ItemUsecase
}

// NewItemHandler はItemHandlerの新しいインスタンスを生成します。
func NewItemHandler(items ItemUsecase) *ItemHandler {
	return &ItemHandler{items: items}
}

// owner はコンテキストから呼び出し元のユーザーIDを取り出します。
func owner(c *gin.Context) (uuid.UUID, bool) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "unauthenticated"})
		return uuid.Nil, false
	}
	return id.UserID, true
}

// itemID はパスパラメータのIDを解析します。不正な形式はストアに問い合わせる前に400で拒否します。
func itemID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid item id"})
		return uuid.Nil, false
	}
	return id, true
}

// scope combines owner and itemID for the routes addressing a single item.
func scope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, ok := owner(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	id, ok := itemID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

// respondError はユースケースのエラーをHTTPステータスに変換します。
func respondError(c *gin.Context, op string, err error) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Fields: ve.Fields})
	case errors.Is(err, usecase.ErrItemNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrItemNotFound.Error()})
	default:
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}

func bindItem(c *gin.Context) (entity.ItemInput, bool) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("item validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Fields: api.FieldErrors(err)})
		return entity.ItemInput{}, false
	}
	return req.ToInput(), true
}

// Create は POST /items を処理します。
func (h *ItemHandler) Create(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	in, ok := bindItem(c)
	if !ok {
		return
	}
	item, err := h.items.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		respondError(c, "create item", err)
		return
	}
	slog.Info("item created", "item_id", item.ID, "user_id", ownerID)
	c.JSON(http.StatusCreated, dto.NewItemResponse(item))
}

// List は GET /items を処理します。?category= で完全一致のフィルタを掛けられます。
func (h *ItemHandler) List(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	items, err := h.items.List(c.Request.Context(), ownerID, c.Query("category"))
	if err != nil {
		respondError(c, "list items", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemListResponse(items))
}

// Get は GET /items/:id を処理します。
func (h *ItemHandler) Get(c *gin.Context) {
	ownerID, id, ok := scope(c)
	if !ok {
		return
	}
	item, err := h.items.Get(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, "get item", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

// Update は PUT /items/:id を処理します。
func (h *ItemHandler) Update(c *gin.Context) {
	ownerID, id, ok := scope(c)
	if !ok {
		return
	}
	in, ok := bindItem(c)
	if !ok {
		return
	}
	item, err := h.items.Update(c.Request.Context(), ownerID, id, in)
	if err != nil {
		respondError(c, "update item", err)
		return
	}
	slog.Info("item updated", "item_id", item.ID, "user_id", ownerID)
	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

// AdjustQuantity は PATCH /items/:id/quantity を処理します。
func (h *ItemHandler) AdjustQuantity(c *gin.Context) {
	ownerID, id, ok := scope(c)
	if !ok {
		return
	}
	var req dto.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Fields: api.FieldErrors(err)})
		return
	}
	item, err := h.items.AdjustQuantity(c.Request.Context(), ownerID, id, *req.Delta)
	if err != nil {
		respondError(c, "adjust quantity", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

// Delete は DELETE /items/:id を処理し、削除したアイテムを返します。
func (h *ItemHandler) Delete(c *gin.Context) {
	ownerID, id, ok := scope(c)
	if !ok {
		return
	}
	item, err := h.items.Delete(c.Request.Context(), ownerID, id)
	if err != nil {
		respondError(c, "delete item", err)
		return
	}
	slog.Info("item deleted", "item_id", item.ID, "user_id", ownerID)
	c.JSON(http.StatusOK, dto.NewItemResponse(item))
}

// Stats は GET /stats を処理します。
func (h *ItemHandler) Stats(c *gin.Context) {
	ownerID, ok := owner(c)
	if !ok {
		return
	}
	s, err := h.items.Stats(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewStatsResponse(s))
}
