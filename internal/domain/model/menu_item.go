package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockQuantityはNULL許可。NULLは「在庫管理しない」商品。
type MenuItem struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	StockQuantity *int64          `gorm:"" json:"stock_quantity"`
	Category      string          `gorm:"type:varchar(50)" json:"category"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
