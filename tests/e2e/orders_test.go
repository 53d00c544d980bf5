package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
)

type orderItemReq struct {
	MenuItemID int64  `json:"menu_item_id"`
	Quantity   *int64 `json:"quantity,omitempty"`
}

type orderCreateReq struct {
	UserID int64          `json:"user_id"`
	Items  []orderItemReq `json:"items"`
}

func placeOrder(t *testing.T, c *TestClient, ctx context.Context, req orderCreateReq) (*http.Response, []byte) {
	t.Helper()
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	return c.doJSON(ctx, t, http.MethodPost, "/orders", "", b)
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("decimal.NewFromString(%q) failed: %v", s, err)
	}
	return d
}

// 価格4.00（在庫10）を2個と、9.50（在庫管理なし）を数量未指定で注文。
// 合計17.50・在庫10→8・在庫なし商品は在庫に触らないこと。
func TestE2E_PlaceOrder_TotalAndStock(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token, adminID := adminLogin(t, c, ctx)

	tea := createMenuItem(t, c, ctx, token, uniqueName("tea"), "4.00", int64Ptr(10))
	cake := createMenuItem(t, c, ctx, token, uniqueName("cake"), "9.50", nil)

	resp, body := placeOrder(t, c, ctx, orderCreateReq{
		UserID: adminID,
		Items: []orderItemReq{
			{MenuItemID: tea.ID, Quantity: int64Ptr(2)},
			{MenuItemID: cake.ID}, //数量未指定=1個
		},
	})
	requireStatus(t, resp, http.StatusCreated, body)

	var order OrderDTO
	mustDecode(t, body, &order)

	if !order.TotalAmount.Equal(mustDec(t, "17.50")) {
		t.Fatalf("total=%s want=17.50", order.TotalAmount)
	}
	if order.Status != "completed" {
		t.Fatalf("status=%s want=completed", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("items=%d want=2", len(order.Items))
	}
	//価格スナップショット
	if !order.Items[0].UnitPrice.Equal(mustDec(t, "4.00")) || !order.Items[0].Subtotal.Equal(mustDec(t, "8.00")) {
		t.Fatalf("line1 unit=%s subtotal=%s", order.Items[0].UnitPrice, order.Items[0].Subtotal)
	}

	//在庫10→8
	after := getMenuItem(t, c, ctx, tea.ID)
	if after.StockQuantity == nil || *after.StockQuantity != 8 {
		t.Fatalf("tea stock=%v want=8", after.StockQuantity)
	}
	//在庫管理なし商品はnilのまま
	afterCake := getMenuItem(t, c, ctx, cake.ID)
	if afterCake.StockQuantity != nil {
		t.Fatalf("cake stock=%v want=nil", afterCake.StockQuantity)
	}
}

// 存在しない商品を含む注文は404で、他の行の在庫も減らないこと。
func TestE2E_PlaceOrder_UnknownMenuItem_NoSideEffects(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token, adminID := adminLogin(t, c, ctx)

	tea := createMenuItem(t, c, ctx, token, uniqueName("tea"), "4.00", int64Ptr(10))

	resp, body := placeOrder(t, c, ctx, orderCreateReq{
		UserID: adminID,
		Items: []orderItemReq{
			{MenuItemID: tea.ID, Quantity: int64Ptr(2)},
			{MenuItemID: 99999999},
		},
	})
	requireStatus(t, resp, http.StatusNotFound, body)

	errResp := mustDecodeError(t, body)
	if errResp.Error != "Menu item ID 99999999 not found." {
		t.Fatalf("error=%q", errResp.Error)
	}

	//rollbackされて在庫はそのまま
	after := getMenuItem(t, c, ctx, tea.ID)
	if after.StockQuantity == nil || *after.StockQuantity != 10 {
		t.Fatalf("tea stock=%v want=10 (rollback)", after.StockQuantity)
	}
}

func TestE2E_PlaceOrder_BadRequests(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token, adminID := adminLogin(t, c, ctx)

	tea := createMenuItem(t, c, ctx, token, uniqueName("tea"), "4.00", int64Ptr(10))

	//明細なし
	resp, body := placeOrder(t, c, ctx, orderCreateReq{UserID: adminID, Items: []orderItemReq{}})
	requireStatus(t, resp, http.StatusBadRequest, body)

	//数量0
	resp, body = placeOrder(t, c, ctx, orderCreateReq{
		UserID: adminID,
		Items:  []orderItemReq{{MenuItemID: tea.ID, Quantity: int64Ptr(0)}},
	})
	requireStatus(t, resp, http.StatusBadRequest, body)

	//存在しないユーザー
	resp, body = placeOrder(t, c, ctx, orderCreateReq{
		UserID: 99999999,
		Items:  []orderItemReq{{MenuItemID: tea.ID}},
	})
	requireStatus(t, resp, http.StatusNotFound, body)
}

// 在庫を超える数の同時注文でも在庫がマイナスにならないこと。
func TestE2E_PlaceOrder_StockRace(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token, adminID := adminLogin(t, c, ctx)

	const workers = 8
	beans := createMenuItem(t, c, ctx, token, uniqueName("beans"), "12.00", int64Ptr(5))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			resp, body := placeOrder(t, c, ctx, orderCreateReq{
				UserID: adminID,
				Items:  []orderItemReq{{MenuItemID: beans.ID}},
			})
			//売り切れでも注文自体は通る
			requireStatus(t, resp, http.StatusCreated, body)
		}()
	}
	wg.Wait()

	after := getMenuItem(t, c, ctx, beans.ID)
	if after.StockQuantity == nil {
		t.Fatalf("beans stock is nil")
	}
	if *after.StockQuantity != 0 {
		t.Fatalf("beans stock=%d want=0 (5 in stock, %d ordered, clamped)", *after.StockQuantity, workers)
	}
}

// 同じ注文を2回出すと別の注文が2件でき、値上げ後も過去の注文の単価は変わらないこと。
func TestE2E_PlaceOrder_NotIdempotent_SnapshotSurvivesPriceChange(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token, adminID := adminLogin(t, c, ctx)

	tea := createMenuItem(t, c, ctx, token, uniqueName("tea"), "4.00", int64Ptr(10))
	req := orderCreateReq{
		UserID: adminID,
		Items:  []orderItemReq{{MenuItemID: tea.ID, Quantity: int64Ptr(1)}},
	}

	resp, body := placeOrder(t, c, ctx, req)
	requireStatus(t, resp, http.StatusCreated, body)
	var first OrderDTO
	mustDecode(t, body, &first)

	resp, body = placeOrder(t, c, ctx, req)
	requireStatus(t, resp, http.StatusCreated, body)
	var second OrderDTO
	mustDecode(t, body, &second)

	if first.ID == second.ID {
		t.Fatalf("both orders got id %d", first.ID)
	}
	//在庫も2回引かれている
	after := getMenuItem(t, c, ctx, tea.ID)
	if after.StockQuantity == nil || *after.StockQuantity != 8 {
		t.Fatalf("stock=%v want=8", after.StockQuantity)
	}

	//値上げ
	b, _ := json.Marshal(map[string]interface{}{"name": tea.Name, "price": "6.00"})
	resp, body = c.doJSON(ctx, t, http.MethodPut, "/menu/"+toStr(tea.ID), token, b)
	requireStatus(t, resp, http.StatusOK, body)

	//過去の注文は注文時点の単価のまま
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders", token, nil)
	requireStatus(t, resp, http.StatusOK, body)
	var orders []OrderDTO
	mustDecode(t, body, &orders)
	for _, o := range orders {
		if o.ID == first.ID {
			if len(o.Items) != 1 || !o.Items[0].UnitPrice.Equal(mustDec(t, "4.00")) {
				t.Fatalf("order %d unit price changed: %+v", o.ID, o.Items)
			}
			return
		}
	}
	t.Fatalf("order %d not found in list", first.ID)
}

func TestE2E_AdminOrders_ListAndStatus(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token, adminID := adminLogin(t, c, ctx)

	tea := createMenuItem(t, c, ctx, token, uniqueName("tea"), "4.00", nil)
	resp, body := placeOrder(t, c, ctx, orderCreateReq{
		UserID: adminID,
		Items:  []orderItemReq{{MenuItemID: tea.ID}},
	})
	requireStatus(t, resp, http.StatusCreated, body)

	var created OrderDTO
	mustDecode(t, body, &created)

	//一覧に出る
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/orders", token, nil)
	requireStatus(t, resp, http.StatusOK, body)

	var orders []OrderDTO
	mustDecode(t, body, &orders)
	found := false
	for _, o := range orders {
		if o.ID == created.ID {
			found = true
			if len(o.Items) != 1 {
				t.Fatalf("order %d items=%d want=1", o.ID, len(o.Items))
			}
		}
	}
	if !found {
		t.Fatalf("order %d not in list", created.ID)
	}

	//ステータス更新（completed→cancelled）
	b, _ := json.Marshal(map[string]string{"status": "cancelled"})
	resp, body = c.doJSON(ctx, t, http.MethodPut, "/orders/"+toStr(created.ID), token, b)
	requireStatus(t, resp, http.StatusOK, body)

	//未知のステータスは400
	b, _ = json.Marshal(map[string]string{"status": "shipped"})
	resp, body = c.doJSON(ctx, t, http.MethodPut, "/orders/"+toStr(created.ID), token, b)
	requireStatus(t, resp, http.StatusBadRequest, body)
}

func TestE2E_AdminOrders_StatusUpdate_MissingOrder(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	token, _ := adminLogin(t, c, ctx)

	b, _ := json.Marshal(map[string]string{"status": "cancelled"})
	resp, body := c.doJSON(ctx, t, http.MethodPut, "/orders/99999999", token, b)
	requireStatus(t, resp, http.StatusNotFound, body)

	errResp := mustDecodeError(t, body)
	if errResp.Error != "Order not found" {
		t.Fatalf("error=%q", errResp.Error)
	}
}

func TestE2E_AdminOrders_RequiresAuth(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/orders", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
