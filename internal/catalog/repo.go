// Package catalog resolves menu line-item references to their authoritative
// unit price at order-creation time.
package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrItemNotFound = errors.New("menu item not found")
)

type Repository interface {
	GetItem(ctx context.Context, itemID string) (*MenuItem, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]MenuItem, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) GetItem(ctx context.Context, itemID string) (*MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var m MenuItem
	err := r.db.QueryRow(ctx, `
		SELECT id, restaurant_id, name, description, price::text, category,
		       is_available, COALESCE(image_url,''), created_at, updated_at
		FROM menu_items WHERE id=$1
	`, itemID).Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price,
		&m.Category, &m.IsAvailable, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, ErrItemNotFound
	}
	return &m, nil
}

func (r *PGRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, restaurant_id, name, description, price::text, category,
		       is_available, COALESCE(image_url,''), created_at, updated_at
		FROM menu_items
		WHERE restaurant_id=$1
		ORDER BY category, name
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MenuItem
	for rows.Next() {
		var m MenuItem
		if err := rows.Scan(&m.ID, &m.RestaurantID, &m.Name, &m.Description, &m.Price,
			&m.Category, &m.IsAvailable, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
