// Package order holds the order model, its Postgres repository and the
// lifecycle service that prices, persists and dispatches new orders.
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quickbites/delivery-api/internal/catalog"
	"github.com/quickbites/delivery-api/internal/rider"
)

var (
	ErrMissingFields   = errors.New("all required fields must be provided")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidStatus   = errors.New("invalid status value")
)

// Service orchestrates order creation (pricing + persistence + rider
// assignment) and status updates.
type Service struct {
	orders  Repository
	catalog catalog.Repository
	riders  rider.Repository
	log     *zap.Logger
}

func NewService(orders Repository, cat catalog.Repository, riders rider.Repository, log *zap.Logger) *Service {
	return &Service{orders: orders, catalog: cat, riders: riders, log: log}
}

// Create prices each line against the catalog, persists the order with status
// Pending and then tries to assign a rider. A pricing miss aborts the whole
// creation; an empty rider pool does not — the order stays persisted and
// riderAssigned comes back false.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (o *Order, riderAssigned bool, err error) {
	if req.CustomerID == "" || req.RestaurantID == "" || len(req.Items) == 0 || req.DeliveryAddress == "" {
		return nil, false, ErrMissingFields
	}

	total := decimal.Zero
	items := make([]Item, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return nil, false, fmt.Errorf("item %s: %w", it.ItemID, ErrInvalidQuantity)
		}
		mi, lookupErr := s.catalog.GetItem(ctx, it.ItemID)
		if lookupErr != nil {
			return nil, false, fmt.Errorf("menu item %s: %w", it.ItemID, catalog.ErrItemNotFound)
		}
		price, parseErr := decimal.NewFromString(mi.Price)
		if parseErr != nil {
			return nil, false, fmt.Errorf("menu item %s: bad price %q: %w", it.ItemID, mi.Price, parseErr)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		items = append(items, Item{
			ID:        uuid.NewString(),
			ItemID:    it.ItemID,
			Name:      mi.Name,
			Quantity:  it.Quantity,
			UnitPrice: price.StringFixed(2),
		})
	}

	o = &Order{
		ID:              uuid.NewString(),
		CustomerID:      req.CustomerID,
		RestaurantID:    req.RestaurantID,
		Items:           items,
		TotalAmount:     total.StringFixed(2),
		Status:          StatusPending,
		DeliveryAddress: req.DeliveryAddress,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, false, err
	}

	assigned, err := s.AssignRider(ctx, o.ID)
	if err != nil {
		if errors.Is(err, rider.ErrNoActiveRiders) {
			s.log.Warn("order created without rider", zap.String("order_id", o.ID))
			persisted, getErr := s.orders.GetByID(ctx, o.ID)
			if getErr != nil {
				return nil, false, getErr
			}
			return persisted, false, nil
		}
		return nil, false, err
	}
	return assigned, true, nil
}

// AssignRider picks the least-busy active rider and records the assignment.
// Returns rider.ErrNoActiveRiders when the pool is empty; neither the order
// nor any rider is touched in that case.
func (s *Service) AssignRider(ctx context.Context, orderID string) (*Order, error) {
	rd, err := s.riders.PickLeastBusy(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.orders.AssignAndRecord(ctx, orderID, rd.ID); err != nil {
		s.log.Error("rider assignment failed",
			zap.String("order_id", orderID),
			zap.String("rider_id", rd.ID),
			zap.Error(err))
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}

// UpdateStatus writes any valid status over the current one. This is the
// administrative override; payment reconciliation drives Accepted and
// Delivered through its own path.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}
	return s.orders.GetByID(ctx, orderID)
}
