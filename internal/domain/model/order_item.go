package model

import "github.com/shopspring/decimal"

// UnitPriceは注文時点の価格スナップショット。
// メニュー価格が後で変わっても注文履歴は変わらない。
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64           `gorm:"not null;index" json:"order_id"`
	MenuItemID int64           `gorm:"not null;index" json:"menu_item_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price"`
	Subtotal   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
}
