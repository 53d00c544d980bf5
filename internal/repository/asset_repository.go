package repository

import (
	"context"

	"app/internal/domain/model"
)

type AssetRepository interface {
	Create(ctx context.Context, asset *model.Asset) error
	FindByID(ctx context.Context, assetID int64) (model.Asset, error)
	List(ctx context.Context) ([]model.Asset, error)
	Update(ctx context.Context, asset *model.Asset) error
	Delete(ctx context.Context, assetID int64) error
}
