package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	FindByID(ctx context.Context, itemID int64) (model.MenuItem, error)
	//管理画面用：有効な商品のみ
	ListActive(ctx context.Context) ([]model.MenuItem, error)
	//公開メニュー：全商品（カテゴリで絞り込み可）
	ListPublic(ctx context.Context, category string) ([]model.MenuItem, error)
	Update(ctx context.Context, item *model.MenuItem) error
	//物理削除
	Delete(ctx context.Context, itemID int64) error
}
