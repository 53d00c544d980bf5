package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type AssetUsecase struct {
	assetRepo repo.AssetRepository
}

func NewAssetUsecase(assetRepo repo.AssetRepository) *AssetUsecase {
	return &AssetUsecase{assetRepo: assetRepo}
}

type AssetInput struct {
	Name         string
	Description  string
	Quantity     int64
	Value        *decimal.Decimal
	PurchaseDate *time.Time
	Status       string
}

func (in AssetInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}
	if in.Value != nil && in.Value.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "value must be >= 0")
	}
	switch model.AssetStatus(in.Status) {
	case "", model.AssetStatusWorking, model.AssetStatusRepair, model.AssetStatusDispose:
		// OK
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	return nil
}

func (u *AssetUsecase) Create(ctx context.Context, in AssetInput) (model.Asset, error) {
	if err := in.validate(); err != nil {
		return model.Asset{}, err
	}

	status := model.AssetStatus(in.Status)
	if status == "" {
		status = model.AssetStatusWorking
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}

	asset := model.Asset{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Quantity:     qty,
		Value:        in.Value,
		PurchaseDate: in.PurchaseDate,
		Status:       status,
	}
	if err := u.assetRepo.Create(ctx, &asset); err != nil {
		return model.Asset{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return asset, nil
}

func (u *AssetUsecase) List(ctx context.Context) ([]model.Asset, error) {
	items, err := u.assetRepo.List(ctx)
	if err != nil {
		return []model.Asset{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *AssetUsecase) Get(ctx context.Context, assetID int64) (model.Asset, error) {
	if assetID <= 0 {
		return model.Asset{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	asset, err := u.assetRepo.FindByID(ctx, assetID)
	if err == repo.ErrNotFound {
		return model.Asset{}, NewHTTPError(http.StatusNotFound, "Asset not found")
	}
	if err != nil {
		return model.Asset{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return asset, nil
}

func (u *AssetUsecase) Update(ctx context.Context, assetID int64, in AssetInput) (model.Asset, error) {
	if assetID <= 0 {
		return model.Asset{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.Asset{}, err
	}

	asset, err := u.assetRepo.FindByID(ctx, assetID)
	if err == repo.ErrNotFound {
		return model.Asset{}, NewHTTPError(http.StatusNotFound, "Asset not found")
	}
	if err != nil {
		return model.Asset{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	asset.Name = strings.TrimSpace(in.Name)
	asset.Description = in.Description
	if in.Quantity > 0 {
		asset.Quantity = in.Quantity
	}
	asset.Value = in.Value
	asset.PurchaseDate = in.PurchaseDate
	if in.Status != "" {
		asset.Status = model.AssetStatus(in.Status)
	}

	if err := u.assetRepo.Update(ctx, &asset); err != nil {
		return model.Asset{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return asset, nil
}

func (u *AssetUsecase) Delete(ctx context.Context, assetID int64) error {
	if assetID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.assetRepo.Delete(ctx, assetID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "Asset not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
