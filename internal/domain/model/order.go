package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// TotalAmountは作成時点の明細小計の合計（非正規化キャッシュ）。
// 明細は作成後に変更されないので再計算パスはない。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	OrderDate   time.Time       `gorm:"not null;index" json:"order_date"`
	IsActive    bool            `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`

	//明細はOrderItemRepositoryで別途作成・取得する
	Items []OrderItem `gorm:"-" json:"items"`
}
