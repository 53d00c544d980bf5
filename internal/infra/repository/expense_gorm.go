package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ExpenseGormRepository struct {
	db *gorm.DB
}

func NewExpenseGormRepository(db *gorm.DB) *ExpenseGormRepository {
	return &ExpenseGormRepository{db: db}
}

func (r *ExpenseGormRepository) Create(ctx context.Context, expense *model.Expense) error {
	if err := r.db.WithContext(ctx).Create(expense).Error; err != nil {
		return err
	}
	return nil
}

// 日付の新しい順
func (r *ExpenseGormRepository) List(ctx context.Context) ([]model.Expense, error) {
	var items []model.Expense
	err := r.db.WithContext(ctx).Order("date desc").Find(&items).Error
	if err != nil {
		return []model.Expense{}, err
	}
	return items, nil
}

func (r *ExpenseGormRepository) Delete(ctx context.Context, expenseID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", expenseID).Delete(&model.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
