package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	tx repo.TransactionManager
}

func NewOrderUsecase(tx repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{tx: tx}
}

type PlaceOrderItemInput struct {
	MenuItemID int64
	//nilなら1個。0以下は注文として不正。
	Quantity *int64
}

type PlaceOrderInput struct {
	UserID int64
	Items  []PlaceOrderItemInput
}

type OrderItemOutput struct {
	ID         int64           `json:"id"`
	MenuItemID int64           `json:"menu_item_id"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	UserID      int64             `json:"user_id"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Status      string            `json:"status"`
	OrderDate   time.Time         `json:"order_date"`
	CreatedAt   time.Time         `json:"created_at"`
	Items       []OrderItemOutput `json:"items"`
}

// 注文確定。明細作成・合計計算・在庫減算・注文保存を1トランザクションで行う。
// 途中で失敗したら在庫も注文も一切残らない。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if in.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "User not found")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order must contain at least one item")
	}
	//数量は変更を加える前に全行チェックする
	for _, line := range in.Items {
		if line.Quantity != nil && *line.Quantity <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid quantity for menu item ID %d", line.MenuItemID))
		}
	}

	var out OrderOutput

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//注文者の存在確認（在庫を触る前）
		user, err := r.Users().FindByID(ctx, in.UserID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if user == nil {
			return NewHTTPError(http.StatusNotFound, "User not found")
		}

		orderItems := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero

		for _, line := range in.Items {
			//商品取得（無効商品も注文可）
			mi, err := r.MenuItems().FindByID(ctx, line.MenuItemID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, fmt.Sprintf("Menu item ID %d not found.", line.MenuItemID))
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//数量未指定は1個
			qty := int64(1)
			if line.Quantity != nil {
				qty = *line.Quantity
			}

			//在庫管理している商品だけ減算（0で止まる。売り切れでもエラーにしない）
			if mi.StockQuantity != nil {
				if err := r.Inventory().DecrementStockClamped(ctx, mi.ID, qty); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}

			//価格スナップショット
			subtotal := mi.Price.Mul(decimal.NewFromInt(qty))
			total = total.Add(subtotal)

			orderItems = append(orderItems, model.OrderItem{
				MenuItemID: mi.ID,
				Quantity:   qty,
				UnitPrice:  mi.Price,
				Subtotal:   subtotal,
			})
		}

		// 注文作成
		now := time.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:      in.UserID,
			TotalAmount: total,
			Status:      model.OrderStatusCompleted,
			OrderDate:   now,
			IsActive:    true,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//採番されたIDを含めて返すため読み直す（投入順のまま）
		saved, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:          orderID,
			UserID:      in.UserID,
			TotalAmount: total,
			Status:      model.OrderStatusCompleted,
			OrderDate:   now,
			CreatedAt:   now,
		}
		out = toOrderOutput(created, saved)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:         it.ID,
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			Subtotal:   it.Subtotal,
		})
	}

	return OrderOutput{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OrderDate:   o.OrderDate,
		CreatedAt:   o.CreatedAt,
		Items:       outItems,
	}
}
