package rider

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound       = errors.New("rider not found")
	ErrNoActiveRiders = errors.New("no available riders")
)

type Repository interface {
	// PickLeastBusy returns the active rider carrying the fewest deliveries.
	// Ties break by id ascending so selection is reproducible.
	PickLeastBusy(ctx context.Context) (*Rider, error)
	GetByID(ctx context.Context, id string) (*Rider, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) PickLeastBusy(ctx context.Context) (*Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rd Rider
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone_no, is_active, delivery_count, created_at, updated_at
		FROM riders
		WHERE is_active = TRUE
		ORDER BY delivery_count ASC, id ASC
		LIMIT 1
	`).Scan(&rd.ID, &rd.Name, &rd.PhoneNo, &rd.IsActive, &rd.DeliveryCount, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		return nil, ErrNoActiveRiders
	}
	return &rd, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Rider, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rd Rider
	err := r.db.QueryRow(ctx, `
		SELECT id, name, phone_no, is_active, delivery_count, created_at, updated_at
		FROM riders WHERE id=$1
	`, id).Scan(&rd.ID, &rd.Name, &rd.PhoneNo, &rd.IsActive, &rd.DeliveryCount, &rd.CreatedAt, &rd.UpdatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &rd, nil
}

func (r *PGRepo) SetActive(ctx context.Context, id string, active bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE riders SET is_active=$2, updated_at=NOW() WHERE id=$1
	`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
