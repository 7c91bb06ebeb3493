package order

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound        = errors.New("order not found")
	ErrAlreadyAssigned = errors.New("order already has a rider")
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context) ([]Order, error)
	ListByCustomer(ctx context.Context, customerID string) ([]Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// AssignAndRecord sets the order's rider and bumps that rider's delivery
	// count in one transaction, so the increment lands iff the assignment does.
	AssignAndRecord(ctx context.Context, orderID, riderID string) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    INSERT INTO orders (id, customer_id, restaurant_id, total_amount, status, delivery_address, ordered_at)
    VALUES ($1,$2,$3,$4,$5,$6,NOW())
  `, o.ID, o.CustomerID, o.RestaurantID, o.TotalAmount, o.Status, o.DeliveryAddress); err != nil {
		return err
	}

	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
      INSERT INTO order_items (id, order_id, item_id, name, quantity, unit_price)
      VALUES ($1,$2,$3,$4,$5,$6)
    `, it.ID, o.ID, it.ItemID, it.Name, it.Quantity, it.UnitPrice); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	if err := r.db.QueryRow(ctx, `
    SELECT id, customer_id, restaurant_id, rider_id, total_amount::text, status,
           delivery_address, ordered_at, delivered_at
    FROM orders WHERE id=$1
  `, id).Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.RiderID, &o.TotalAmount,
		&o.Status, &o.DeliveryAddress, &o.OrderedAt, &o.DeliveredAt); err != nil {
		return nil, ErrNotFound
	}

	items, err := r.getItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PGRepo) getItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.Query(ctx, `
    SELECT id, order_id, item_id, name, quantity, unit_price::text
    FROM order_items WHERE order_id=$1
  `, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ItemID, &it.Name, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *PGRepo) List(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `
    SELECT id, customer_id, restaurant_id, rider_id, total_amount::text, status,
           delivery_address, ordered_at, delivered_at
    FROM orders ORDER BY ordered_at DESC
  `)
}

func (r *PGRepo) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	return r.list(ctx, `
    SELECT id, customer_id, restaurant_id, rider_id, total_amount::text, status,
           delivery_address, ordered_at, delivered_at
    FROM orders WHERE customer_id=$1 ORDER BY ordered_at DESC
  `, customerID)
}

func (r *PGRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error) {
	return r.list(ctx, `
    SELECT id, customer_id, restaurant_id, rider_id, total_amount::text, status,
           delivery_address, ordered_at, delivered_at
    FROM orders WHERE restaurant_id=$1 ORDER BY ordered_at DESC
  `, restaurantID)
}

func (r *PGRepo) list(ctx context.Context, q string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.CustomerID, &o.RestaurantID, &o.RiderID, &o.TotalAmount,
			&o.Status, &o.DeliveryAddress, &o.OrderedAt, &o.DeliveredAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE orders
    SET status = $2,
        delivered_at = CASE WHEN $2 = 'Delivered' AND delivered_at IS NULL
                            THEN NOW() ELSE delivered_at END
    WHERE id = $1
  `, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) AssignAndRecord(ctx context.Context, orderID, riderID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE orders SET rider_id = $2 WHERE id = $1 AND rider_id IS NULL
  `, orderID, riderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, orderID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrAlreadyAssigned
	}

	// The in-place increment lets Postgres serialize concurrent bumps.
	if _, err := tx.Exec(ctx, `
    UPDATE riders SET delivery_count = delivery_count + 1, updated_at = NOW() WHERE id = $1
  `, riderID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
