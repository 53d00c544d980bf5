package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ExpenseUsecase struct {
	expenseRepo repo.ExpenseRepository
}

func NewExpenseUsecase(expenseRepo repo.ExpenseRepository) *ExpenseUsecase {
	return &ExpenseUsecase{expenseRepo: expenseRepo}
}

type ExpenseInput struct {
	Category    string
	Amount      decimal.Decimal
	Description string
	//nilなら今日
	Date *time.Time
}

func (u *ExpenseUsecase) Create(ctx context.Context, in ExpenseInput) (model.Expense, error) {
	if strings.TrimSpace(in.Category) == "" {
		return model.Expense{}, NewHTTPError(http.StatusBadRequest, "category is required")
	}
	if in.Amount.IsNegative() {
		return model.Expense{}, NewHTTPError(http.StatusBadRequest, "amount must be >= 0")
	}

	date := time.Now()
	if in.Date != nil {
		date = *in.Date
	}

	exp := model.Expense{
		Category:    strings.TrimSpace(in.Category),
		Amount:      in.Amount,
		Description: in.Description,
		Date:        date,
	}
	if err := u.expenseRepo.Create(ctx, &exp); err != nil {
		return model.Expense{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return exp, nil
}

// 日付の新しい順
func (u *ExpenseUsecase) List(ctx context.Context) ([]model.Expense, error) {
	items, err := u.expenseRepo.List(ctx)
	if err != nil {
		return []model.Expense{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ExpenseUsecase) Delete(ctx context.Context, expenseID int64) (string, error) {
	if expenseID <= 0 {
		return "", NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.expenseRepo.Delete(ctx, expenseID); err != nil {
		if err == repo.ErrNotFound {
			return "", NewHTTPError(http.StatusNotFound, "Expense not found")
		}
		return "", NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return fmt.Sprintf("Expense %d deleted", expenseID), nil
}
