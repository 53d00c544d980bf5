package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

func (r *MenuItemGormRepository) Create(ctx context.Context, item *model.MenuItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return err
	}
	return nil
}

func (r *MenuItemGormRepository) FindByID(ctx context.Context, itemID int64) (model.MenuItem, error) {
	var m model.MenuItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return m, nil
}

// 有効な商品のみ（管理画面用）
func (r *MenuItemGormRepository) ListActive(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

// 公開メニュー。無効商品も含む。categoryが空なら全件。
func (r *MenuItemGormRepository) ListPublic(ctx context.Context, category string) ([]model.MenuItem, error) {
	q := r.db.WithContext(ctx).Model(&model.MenuItem{})
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var items []model.MenuItem
	if err := q.Order("id asc").Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) Update(ctx context.Context, item *model.MenuItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return err
	}
	return nil
}

// 物理削除
func (r *MenuItemGormRepository) Delete(ctx context.Context, itemID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", itemID).Delete(&model.MenuItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
