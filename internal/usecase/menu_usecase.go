package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type MenuUsecase struct {
	menuRepo repo.MenuItemRepository
}

// DI
func NewMenuUsecase(menuRepo repo.MenuItemRepository) *MenuUsecase {
	return &MenuUsecase{menuRepo: menuRepo}
}

type MenuItemInput struct {
	Name          string
	Price         decimal.Decimal
	StockQuantity *int64
	Category      string
}

func (in MenuItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock_quantity must be >= 0")
	}
	return nil
}

func (u *MenuUsecase) Create(ctx context.Context, in MenuItemInput) (model.MenuItem, error) {
	if err := in.validate(); err != nil {
		return model.MenuItem{}, err
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = "Uncategorized"
	}

	item := model.MenuItem{
		Name:          strings.TrimSpace(in.Name),
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Category:      category,
		IsActive:      true,
	}
	if err := u.menuRepo.Create(ctx, &item); err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

// 管理画面用：有効な商品のみ
func (u *MenuUsecase) ListActive(ctx context.Context) ([]model.MenuItem, error) {
	items, err := u.menuRepo.ListActive(ctx)
	if err != nil {
		return []model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// 公開メニュー：無効商品も含む全件（カテゴリ絞り込み可）
func (u *MenuUsecase) ListPublic(ctx context.Context, category string) ([]model.MenuItem, error) {
	items, err := u.menuRepo.ListPublic(ctx, strings.TrimSpace(category))
	if err != nil {
		return []model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *MenuUsecase) Update(ctx context.Context, itemID int64, in MenuItemInput) (model.MenuItem, error) {
	if itemID <= 0 {
		return model.MenuItem{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := in.validate(); err != nil {
		return model.MenuItem{}, err
	}

	item, err := u.menuRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return model.MenuItem{}, NewHTTPError(http.StatusNotFound, "Item not found")
	}
	if err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Name = strings.TrimSpace(in.Name)
	item.Price = in.Price
	item.StockQuantity = in.StockQuantity
	if c := strings.TrimSpace(in.Category); c != "" {
		item.Category = c
	}

	if err := u.menuRepo.Update(ctx, &item); err != nil {
		return model.MenuItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item, nil
}

// ソフト削除（is_active=false）。削除した商品名を返す。
func (u *MenuUsecase) Deactivate(ctx context.Context, itemID int64) (string, error) {
	if itemID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.menuRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusNotFound, "Item not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.IsActive = false
	if err := u.menuRepo.Update(ctx, &item); err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item.Name, nil
}

// 物理削除。削除した商品名を返す。
func (u *MenuUsecase) Purge(ctx context.Context, itemID int64) (string, error) {
	if itemID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.menuRepo.FindByID(ctx, itemID)
	if err == repo.ErrNotFound {
		return "", NewHTTPError(http.StatusNotFound, "Item not found")
	}
	if err != nil {
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.menuRepo.Delete(ctx, itemID); err != nil {
		if err == repo.ErrNotFound {
			return "", NewHTTPError(http.StatusNotFound, "Item not found")
		}
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return item.Name, nil
}
