package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type AssetGormRepository struct {
	db *gorm.DB
}

func NewAssetGormRepository(db *gorm.DB) *AssetGormRepository {
	return &AssetGormRepository{db: db}
}

func (r *AssetGormRepository) Create(ctx context.Context, asset *model.Asset) error {
	if err := r.db.WithContext(ctx).Create(asset).Error; err != nil {
		return err
	}
	return nil
}

func (r *AssetGormRepository) FindByID(ctx context.Context, assetID int64) (model.Asset, error) {
	var a model.Asset
	err := r.db.WithContext(ctx).Where("id = ?", assetID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Asset{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

func (r *AssetGormRepository) List(ctx context.Context) ([]model.Asset, error) {
	var items []model.Asset
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return []model.Asset{}, err
	}
	return items, nil
}

func (r *AssetGormRepository) Update(ctx context.Context, asset *model.Asset) error {
	if err := r.db.WithContext(ctx).Save(asset).Error; err != nil {
		return err
	}
	return nil
}

func (r *AssetGormRepository) Delete(ctx context.Context, assetID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", assetID).Delete(&model.Asset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
