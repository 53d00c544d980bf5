package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Category    string          `gorm:"type:varchar(100);not null" json:"category"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	Description string          `gorm:"type:varchar(255)" json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
