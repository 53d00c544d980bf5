package repository

import (
	"context"

	"app/internal/domain/model"
)

type ExpenseRepository interface {
	Create(ctx context.Context, expense *model.Expense) error
	//日付の新しい順
	List(ctx context.Context) ([]model.Expense, error)
	Delete(ctx context.Context, expenseID int64) error
}
