package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"inventory_backend/internal/feature/items/domain/entity"
)

// ItemRepository はオーナー単位でスコープされた在庫データの永続化層を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
// すべてのメソッドはownerIDを必須とし、他ユーザーのレコードを返却・変更してはいけません。
type ItemRepository interface {
	// Create は新しいアイテムを保存し、IDとタイムスタンプを設定します。
	Create(ctx context.Context, item *entity.Item) error
	// ListByOwner はオーナーのアイテムを新しい順に返します。categoryが空でなければ一致するものだけを返します。
	ListByOwner(ctx context.Context, ownerID uuid.UUID, category entity.Category) ([]entity.Item, error)
	// FindByID はオーナーのアイテムを取得します。
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error)
	// Update はアイテムを更新し、更新後のレコードを返します。
	Update(ctx context.Context, ownerID, id uuid.UUID, in entity.ItemInput) (*entity.Item, error)
	// Delete はアイテムを削除し、削除前のレコードを返します。
	Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error)
	// AdjustQuantity は数量にdeltaを加算します（0未満にはならない）。
	AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int64) (*entity.Item, error)
}

// ItemUsecase provides the owner-scoped item operations and statistics.
type ItemUsecase struct {
	repo ItemRepository
}

// NewItemUsecase creates a new ItemUsecase with the given repository.
func NewItemUsecase(r ItemRepository) *ItemUsecase {
	return &ItemUsecase{repo: r}
}

func validate(in entity.ItemInput) (entity.ItemInput, error) {
	in = in.Normalize()
	if fields := in.Validate(); len(fields) > 0 {
		return in, &ValidationError{Fields: fields}
	}
	return in, nil
}

// Create validates in and stores it as a new item owned by ownerID.
func (u *ItemUsecase) Create(ctx context.Context, ownerID uuid.UUID, in entity.ItemInput) (*entity.Item, error) {
	in, err := validate(in)
	if err != nil {
		return nil, err
	}
	item := &entity.Item{
		ID:          uuid.New(),
		UserID:      ownerID,
		Name:        in.Name,
		Quantity:    in.Quantity,
		Price:       in.Price,
		Category:    in.Category,
		Description: in.Description,
	}
	if err := u.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}
	return item, nil
}

// List returns the owner's items, newest first, optionally filtered by category.
func (u *ItemUsecase) List(ctx context.Context, ownerID uuid.UUID, category string) ([]entity.Item, error) {
	return u.repo.ListByOwner(ctx, ownerID, entity.Category(category))
}

// Get returns one of the owner's items or ErrItemNotFound.
func (u *ItemUsecase) Get(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error) {
	return u.repo.FindByID(ctx, ownerID, id)
}

// Update validates in and replaces the editable fields of the owner's item.
func (u *ItemUsecase) Update(ctx context.Context, ownerID, id uuid.UUID, in entity.ItemInput) (*entity.Item, error) {
	in, err := validate(in)
	if err != nil {
		return nil, err
	}
	return u.repo.Update(ctx, ownerID, id, in)
}

// Delete removes the owner's item and returns its prior value.
func (u *ItemUsecase) Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error) {
	return u.repo.Delete(ctx, ownerID, id)
}

// AdjustQuantity adds delta to the item's quantity; the stored result is never below zero.
func (u *ItemUsecase) AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int64) (*entity.Item, error) {
	if fields := entity.ValidateDelta(delta); len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return u.repo.AdjustQuantity(ctx, ownerID, id, delta)
}

// Stats aggregates the owner's current items. It is computed on every call.
func (u *ItemUsecase) Stats(ctx context.Context, ownerID uuid.UUID) (*entity.Stats, error) {
	items, err := u.repo.ListByOwner(ctx, ownerID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	s := entity.ComputeStats(items)
	return &s, nil
}
