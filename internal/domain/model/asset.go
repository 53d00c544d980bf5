package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type AssetStatus string

const (
	AssetStatusWorking AssetStatus = "working"
	AssetStatusRepair  AssetStatus = "repair"
	AssetStatusDispose AssetStatus = "dispose"
)

// 店舗の備品（レジ、冷蔵庫など）。
type Asset struct {
	ID           int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string           `gorm:"type:varchar(255);not null" json:"name"`
	Description  string           `gorm:"type:varchar(500)" json:"description"`
	Quantity     int64            `gorm:"not null;default:1" json:"quantity"`
	Value        *decimal.Decimal `gorm:"type:numeric(10,2)" json:"value"`
	PurchaseDate *time.Time       `gorm:"type:date" json:"purchase_date"`
	Status       AssetStatus      `gorm:"type:varchar(50);not null;default:'working'" json:"status"`
	AddedAt      time.Time        `gorm:"not null;autoCreateTime" json:"added_at"`
	UpdatedAt    time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
