// Package adapters はitemsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	authentity "inventory_backend/internal/feature/auth/domain/entity"
	"inventory_backend/internal/feature/items/domain/entity"
)

// ItemModel はitemsテーブルのGORMモデルです。
// user_idはusersへの外部キーで、NULLは許可しません。
type ItemModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_items_user_created,priority:1"`
	Owner       *authentity.User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Name        string           `gorm:"size:255;not null"`
	Quantity    int64            `gorm:"not null;check:quantity >= 0"`
	Price       decimal.Decimal  `gorm:"type:numeric;not null"`
	Category    string           `gorm:"size:32;not null;index"`
	Description string           `gorm:"size:500"`
	CreatedAt   time.Time        `gorm:"index:idx_items_user_created,priority:2"`
	UpdatedAt   time.Time
}

// TableName はGORMが使用するテーブル名を返します。
func (ItemModel) TableName() string { return "items" }

func toModel(it *entity.Item) *ItemModel {
	return &ItemModel{
		ID:          it.ID,
		UserID:      it.UserID,
		Name:        it.Name,
		Quantity:    it.Quantity,
		Price:       it.Price,
		Category:    string(it.Category),
		Description: it.Description,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

// ToEntity converts the row into the domain type.
func (m *ItemModel) ToEntity() *entity.Item {
	return &entity.Item{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Quantity:    m.Quantity,
		Price:       m.Price,
		Category:    entity.Category(m.Category),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
