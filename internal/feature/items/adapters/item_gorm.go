package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventory_backend/internal/feature/items/domain/entity"
	"inventory_backend/internal/feature/items/usecase"
)

// itemGorm はItemRepositoryインターフェースのGORM実装です。
// すべてのクエリにuser_idの条件を付け、他ユーザーのアイテムには触れません。
type itemGorm struct {
	db *gorm.DB
}

// itemGormがItemRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.ItemRepository = (*itemGorm)(nil)

// NewItemRepository は指定されたgorm.DB接続でitemGormの新しいインスタンスを生成します。
func NewItemRepository(db *gorm.DB) *itemGorm {
	return &itemGorm{db: db}
}

// scoped はオーナーとIDで絞り込んだクエリを返します。
func scoped(db *gorm.DB, ownerID, id uuid.UUID) *gorm.DB {
	return db.Model(&ItemModel{}).Where("id = ? AND user_id = ?", id, ownerID)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usecase.ErrItemNotFound
	}
	return err
}

// Create はアイテムを保存し、生成されたタイムスタンプをitemに書き戻します。
func (r *itemGorm) Create(ctx context.Context, item *entity.Item) error {
	if item == nil {
		return errors.New("item is nil")
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	m := toModel(item)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	item.CreatedAt = m.CreatedAt
	item.UpdatedAt = m.UpdatedAt
	return nil
}

// ListByOwner はオーナーのアイテムを作成日時の降順で返します。
func (r *itemGorm) ListByOwner(ctx context.Context, ownerID uuid.UUID, category entity.Category) ([]entity.Item, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	if category != "" {
		q = q.Where("category = ?", string(category))
	}

	var rows []ItemModel
	if err := q.Order("created_at DESC").Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entity.Item, 0, len(rows))
	for i := range rows {
		items = append(items, *rows[i].ToEntity())
	}
	return items, nil
}

// FindByID はオーナーのアイテムを1件取得します。
func (r *itemGorm) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error) {
	var m ItemModel
	if err := scoped(r.db.WithContext(ctx), ownerID, id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return m.ToEntity(), nil
}

// Update は編集可能なフィールドを置き換え、更新後のレコードを返します。
func (r *itemGorm) Update(ctx context.Context, ownerID, id uuid.UUID, in entity.ItemInput) (*entity.Item, error) {
	var m ItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := scoped(tx, ownerID, id).Updates(map[string]any{
			"name":        in.Name,
			"quantity":    in.Quantity,
			"price":       in.Price,
			"category":    string(in.Category),
			"description": in.Description,
			"updated_at":  time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrItemNotFound
		}
		return scoped(tx, ownerID, id).First(&m).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return m.ToEntity(), nil
}

// Delete はアイテムを削除し、削除前のレコードを返します。
func (r *itemGorm) Delete(ctx context.Context, ownerID, id uuid.UUID) (*entity.Item, error) {
	var m ItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scoped(tx, ownerID, id).First(&m).Error; err != nil {
			return err
		}
		res := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&ItemModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 並行する削除に先を越された
			return usecase.ErrItemNotFound
		}
		return nil
	})
	if err != nil {
		return nil, notFound(err)
	}
	return m.ToEntity(), nil
}

// AdjustQuantity は数量にdeltaを加算します。結果は0からentity.MaxQuantityの範囲に丸めます。
// |delta| がMaxQuantity以下であることは呼び出し側（usecase）が保証します。
// 読み取りと書き込みを1つのUPDATE文で行うため、同時実行でも更新が失われません。
func (r *itemGorm) AdjustQuantity(ctx context.Context, ownerID, id uuid.UUID, delta int64) (*entity.Item, error) {
	var m ItemModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := scoped(tx, ownerID, id).Updates(map[string]any{
			"quantity": gorm.Expr("CASE WHEN quantity + ? < 0 THEN 0 WHEN quantity + ? > ? THEN ? ELSE quantity + ? END",
				delta, delta, entity.MaxQuantity, entity.MaxQuantity, delta),
			"updated_at": time.Now(),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrItemNotFound
		}
		return scoped(tx, ownerID, id).First(&m).Error
	})
	if err != nil {
		return nil, notFound(err)
	}
	return m.ToEntity(), nil
}
