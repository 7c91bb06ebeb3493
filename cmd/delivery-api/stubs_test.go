package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickbites/delivery-api/internal/catalog"
	"github.com/quickbites/delivery-api/internal/customer"
	"github.com/quickbites/delivery-api/internal/order"
	"github.com/quickbites/delivery-api/internal/payment"
	"github.com/quickbites/delivery-api/internal/rider"
)

//
// ---------- IN-MEMORY STUBS (implement the repo interfaces) ----------
//

type stubCatalog struct {
	items map[string]catalog.MenuItem
}

func (s *stubCatalog) GetItem(_ context.Context, itemID string) (*catalog.MenuItem, error) {
	m, ok := s.items[itemID]
	if !ok {
		return nil, catalog.ErrItemNotFound
	}
	return &m, nil
}

func (s *stubCatalog) ListByRestaurant(_ context.Context, restaurantID string) ([]catalog.MenuItem, error) {
	var out []catalog.MenuItem
	for _, m := range s.items {
		if m.RestaurantID == restaurantID {
			out = append(out, m)
		}
	}
	return out, nil
}

type stubRiderRepo struct {
	m map[string]*rider.Rider
}

func (s *stubRiderRepo) PickLeastBusy(context.Context) (*rider.Rider, error) {
	var active []*rider.Rider
	for _, r := range s.m {
		if r.IsActive {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return nil, rider.ErrNoActiveRiders
	}
	sort.Slice(active, func(i, j int) bool {
		if active[i].DeliveryCount != active[j].DeliveryCount {
			return active[i].DeliveryCount < active[j].DeliveryCount
		}
		return active[i].ID < active[j].ID
	})
	cp := *active[0]
	return &cp, nil
}

func (s *stubRiderRepo) GetByID(_ context.Context, id string) (*rider.Rider, error) {
	r, ok := s.m[id]
	if !ok {
		return nil, rider.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *stubRiderRepo) SetActive(_ context.Context, id string, active bool) error {
	r, ok := s.m[id]
	if !ok {
		return rider.ErrNotFound
	}
	r.IsActive = active
	return nil
}

type stubOrderRepo struct {
	m      map[string]*order.Order
	riders *stubRiderRepo
}

func newStubOrderRepo(riders *stubRiderRepo) *stubOrderRepo {
	return &stubOrderRepo{m: map[string]*order.Order{}, riders: riders}
}

func (s *stubOrderRepo) Create(_ context.Context, o *order.Order) error {
	cp := *o
	cp.OrderedAt = time.Now().UTC()
	s.m[o.ID] = &cp
	return nil
}

func (s *stubOrderRepo) GetByID(_ context.Context, id string) (*order.Order, error) {
	o, ok := s.m[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderRepo) List(context.Context) ([]order.Order, error) {
	var out []order.Order
	for _, o := range s.m {
		out = append(out, *o)
	}
	return out, nil
}

func (s *stubOrderRepo) ListByCustomer(_ context.Context, customerID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range s.m {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range s.m {
		if o.RestaurantID == restaurantID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	o, ok := s.m[id]
	if !ok {
		return order.ErrNotFound
	}
	o.Status = status
	if status == order.StatusDelivered && o.DeliveredAt == nil {
		now := time.Now().UTC()
		o.DeliveredAt = &now
	}
	return nil
}

func (s *stubOrderRepo) AssignAndRecord(_ context.Context, orderID, riderID string) error {
	o, ok := s.m[orderID]
	if !ok {
		return order.ErrNotFound
	}
	if o.RiderID != nil {
		return order.ErrAlreadyAssigned
	}
	o.RiderID = &riderID
	s.riders.m[riderID].DeliveryCount++
	return nil
}

type stubTxnRepo struct {
	m map[string]*payment.Transaction
}

func newStubTxnRepo() *stubTxnRepo { return &stubTxnRepo{m: map[string]*payment.Transaction{}} }

func (s *stubTxnRepo) Create(_ context.Context, t *payment.Transaction) error {
	for _, ex := range s.m {
		if ex.OrderID == t.OrderID {
			return payment.ErrAlreadyInitiated
		}
	}
	cp := *t
	cp.CreatedAt = time.Now().UTC()
	s.m[t.ID] = &cp
	return nil
}

func (s *stubTxnRepo) GetByID(_ context.Context, id string) (*payment.Transaction, error) {
	t, ok := s.m[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (s *stubTxnRepo) GetByGatewayTranID(_ context.Context, tranID string) (*payment.Transaction, error) {
	for _, t := range s.m {
		if t.GatewayTranID == tranID {
			cp := *t
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (s *stubTxnRepo) ListByOrder(_ context.Context, orderID string) ([]payment.Transaction, error) {
	var out []payment.Transaction
	for _, t := range s.m {
		if t.OrderID == orderID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (s *stubTxnRepo) List(context.Context) ([]payment.Transaction, error) {
	var out []payment.Transaction
	for _, t := range s.m {
		out = append(out, *t)
	}
	return out, nil
}

func (s *stubTxnRepo) MarkCompleted(_ context.Context, gatewayTranID string, gatewayData []byte, at time.Time) (*payment.Transaction, error) {
	for _, t := range s.m {
		if t.GatewayTranID == gatewayTranID &&
			(t.Status == payment.StatusPending || t.Status == payment.StatusCompleted) {
			t.Status = payment.StatusCompleted
			t.VerifiedAt = &at
			t.GatewayData = gatewayData
			cp := *t
			return &cp, nil
		}
	}
	return nil, payment.ErrNotFound
}

func (s *stubTxnRepo) MarkFailed(_ context.Context, gatewayTranID string) error {
	for _, t := range s.m {
		if t.GatewayTranID == gatewayTranID && t.Status == payment.StatusPending {
			t.Status = payment.StatusFailed
		}
	}
	return nil
}

func (s *stubTxnRepo) Verify(_ context.Context, id, riderID string, at time.Time) (*payment.Transaction, error) {
	t, ok := s.m[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	if t.Method != payment.MethodCash || t.Status == payment.StatusVerified {
		return nil, payment.ErrAlreadyVerified
	}
	t.Status = payment.StatusVerified
	t.VerifiedBy = &riderID
	t.VerifiedAt = &at
	cp := *t
	return &cp, nil
}

// stubCustomerFetcher returns a fixed profile for any id.
type stubCustomerFetcher struct{}

func (stubCustomerFetcher) FetchCustomer(_ context.Context, id string) (*customer.Profile, error) {
	if id == "" {
		return nil, fmt.Errorf("customer not found")
	}
	return &customer.Profile{ID: id, Name: "Test Customer", Email: "cust@example.com", PhoneNo: "01700000000"}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
