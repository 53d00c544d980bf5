package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫減算（0で止まる）。
// GREATESTを使った1回の条件付きUPDATEなので、同時注文は行ロックで直列化され
// 読んで引いて書く競合（二重売り）は起きない。
// stock_quantityがNULL（在庫管理しない商品）は対象外＝0件更新で正常。
func (r *InventoryGormRepository) DecrementStockClamped(ctx context.Context, menuItemID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.MenuItem{}).
		Where("id = ? AND stock_quantity IS NOT NULL", menuItemID).
		Update("stock_quantity", gorm.Expr("GREATEST(stock_quantity - ?, 0)", qty))

	return res.Error
}
