package repository

import "context"

type InventoryRepository interface {
	// 在庫減算。0未満にはならない（0で止まる）。
	// 在庫管理しない商品（stock_quantityがNULL）には何もしない。
	// 1回の条件付きUPDATEなので同時注文でも読んで引いて書く競合は起きない。
	DecrementStockClamped(ctx context.Context, menuItemID int64, qty int64) error
}
