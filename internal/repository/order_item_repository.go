package repository

import (
	"context"

	"app/internal/domain/model"
)

// 注文明細。作成後は変更しない（価格スナップショットを守る）。
type OrderItemRepository interface {
	//orderIDを各行に振って一括作成
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	//投入順（id昇順）で返す
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
