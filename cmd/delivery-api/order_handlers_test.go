package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quickbites/delivery-api/internal/catalog"
	"github.com/quickbites/delivery-api/internal/order"
	"github.com/quickbites/delivery-api/internal/rider"
)

type orderEnv struct {
	router  *gin.Engine
	orders  *stubOrderRepo
	riders  *stubRiderRepo
	catalog *stubCatalog
}

func newOrderEnv(items map[string]catalog.MenuItem, riders map[string]*rider.Rider) *orderEnv {
	cat := &stubCatalog{items: items}
	rd := &stubRiderRepo{m: riders}
	repo := newStubOrderRepo(rd)
	svc := order.NewService(repo, cat, rd, zap.NewNop())

	r := gin.New()
	r.POST("/orders", createOrderHandler(svc))
	r.GET("/orders", listOrdersHandler(repo))
	r.GET("/orders/:id", getOrderHandler(repo))
	r.PATCH("/orders/:id/status", updateOrderStatusHandler(svc))
	r.GET("/customers/:customerId/orders", listOrdersByCustomerHandler(repo))

	return &orderEnv{router: r, orders: repo, riders: rd, catalog: cat}
}

func menuItem(id, price string) catalog.MenuItem {
	return catalog.MenuItem{ID: id, Name: "item-" + id, Price: price, IsAvailable: true}
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func patchJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrder_HappyPath(t *testing.T) {
	itemID := uuid.NewString()
	riderID := uuid.NewString()
	env := newOrderEnv(
		map[string]catalog.MenuItem{itemID: menuItem(itemID, "15.00")},
		map[string]*rider.Rider{riderID: {ID: riderID, Name: "Karim", IsActive: true, DeliveryCount: 5}},
	)

	body := fmt.Sprintf(`{"customer_id":%q,"restaurant_id":%q,"delivery_address":"12/3 Lake Road","items":[{"item_id":%q,"quantity":2}]}`,
		uuid.NewString(), uuid.NewString(), itemID)
	w := postJSON(env.router, "/orders", body)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Order order.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if resp.Order.TotalAmount != "30.00" {
		t.Fatalf("total=%s, want 30.00", resp.Order.TotalAmount)
	}
	if resp.Order.RiderID == nil || *resp.Order.RiderID != riderID {
		t.Fatalf("rider not assigned: %+v", resp.Order)
	}
	if got := env.riders.m[riderID].DeliveryCount; got != 6 {
		t.Fatalf("delivery count=%d, want 6", got)
	}
	if len(env.orders.m) != 1 {
		t.Fatalf("orders persisted=%d, want 1", len(env.orders.m))
	}
}

func TestCreateOrder_UnknownMenuItem(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})

	missing := uuid.NewString()
	body := fmt.Sprintf(`{"customer_id":%q,"restaurant_id":%q,"delivery_address":"x","items":[{"item_id":%q,"quantity":1}]}`,
		uuid.NewString(), uuid.NewString(), missing)
	w := postJSON(env.router, "/orders", body)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (want 400)", w.Code, w.Body.String())
	}
	if len(env.orders.m) != 0 {
		t.Fatalf("order persisted despite unknown item")
	}
	// The offending item must be identifiable from the message.
	if !bytes.Contains(w.Body.Bytes(), []byte(missing)) {
		t.Fatalf("error does not name the item: %s", w.Body.String())
	}
}

func TestCreateOrder_NoAvailableRiders(t *testing.T) {
	itemID := uuid.NewString()
	env := newOrderEnv(
		map[string]catalog.MenuItem{itemID: menuItem(itemID, "10.00")},
		map[string]*rider.Rider{},
	)

	body := fmt.Sprintf(`{"customer_id":%q,"restaurant_id":%q,"delivery_address":"x","items":[{"item_id":%q,"quantity":1}]}`,
		uuid.NewString(), uuid.NewString(), itemID)
	w := postJSON(env.router, "/orders", body)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (want 404)", w.Code, w.Body.String())
	}
	// Partial success: the order still exists for a later assignment retry.
	if len(env.orders.m) != 1 {
		t.Fatalf("orders persisted=%d, want 1", len(env.orders.m))
	}
	var resp struct {
		Order order.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Order.ID == "" {
		t.Fatalf("response does not carry the persisted order: %s", w.Body.String())
	}
}

func TestCreateOrder_MissingFields(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})

	w := postJSON(env.router, "/orders", `{"customer_id":"","items":[]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (want 400)", w.Code, w.Body.String())
	}
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/"+uuid.NewString(), nil)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (want 404)", w.Code, w.Body.String())
	}
}

func TestGetOrder_InvalidID(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/orders/not-a-uuid", nil)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (want 400)", w.Code, w.Body.String())
	}
}

func TestListOrdersByCustomer(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})
	custID := uuid.NewString()
	oid := uuid.NewString()
	env.orders.m[oid] = &order.Order{ID: oid, CustomerID: custID, Status: order.StatusPending, TotalAmount: "50.00"}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/customers/"+custID+"/orders", nil)
	env.router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (want 200)", w.Code, w.Body.String())
	}
	var arr []order.Order
	if err := json.Unmarshal(w.Body.Bytes(), &arr); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(arr) != 1 || arr[0].ID != oid {
		t.Fatalf("unexpected orders: %s", w.Body.String())
	}
}

func TestUpdateOrderStatus_OK(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})
	oid := uuid.NewString()
	env.orders.m[oid] = &order.Order{ID: oid, Status: order.StatusPending}

	w := patchJSON(env.router, "/orders/"+oid+"/status", `{"status":"In Progress"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (want 200)", w.Code, w.Body.String())
	}
	if env.orders.m[oid].Status != order.StatusInProgress {
		t.Fatalf("status=%s, want %s", env.orders.m[oid].Status, order.StatusInProgress)
	}
}

func TestUpdateOrderStatus_StampsDeliveryTime(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})
	oid := uuid.NewString()
	env.orders.m[oid] = &order.Order{ID: oid, Status: order.StatusInProgress}

	w := patchJSON(env.router, "/orders/"+oid+"/status", `{"status":"Delivered"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s (want 200)", w.Code, w.Body.String())
	}
	if env.orders.m[oid].DeliveredAt == nil {
		t.Fatalf("delivered_at not stamped")
	}
}

func TestUpdateOrderStatus_InvalidValue(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})
	oid := uuid.NewString()
	env.orders.m[oid] = &order.Order{ID: oid, Status: order.StatusPending}

	w := patchJSON(env.router, "/orders/"+oid+"/status", `{"status":"wtf"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s (want 400)", w.Code, w.Body.String())
	}
	if env.orders.m[oid].Status != order.StatusPending {
		t.Fatalf("status mutated on invalid input")
	}
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	env := newOrderEnv(map[string]catalog.MenuItem{}, map[string]*rider.Rider{})

	w := patchJSON(env.router, "/orders/"+uuid.NewString()+"/status", `{"status":"Accepted"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s (want 404)", w.Code, w.Body.String())
	}
}
