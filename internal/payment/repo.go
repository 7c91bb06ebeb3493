package payment

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound         = errors.New("transaction not found")
	ErrAlreadyInitiated = errors.New("payment already initiated for this order")
	ErrAlreadyVerified  = errors.New("payment already verified")
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	GetByGatewayTranID(ctx context.Context, tranID string) (*Transaction, error)
	ListByOrder(ctx context.Context, orderID string) ([]Transaction, error)
	List(ctx context.Context) ([]Transaction, error)
	// MarkCompleted moves an online transaction to Completed and stores the
	// gateway validation payload. Idempotent for an already-Completed record;
	// Failed and Verified records are never touched.
	MarkCompleted(ctx context.Context, gatewayTranID string, gatewayData []byte, at time.Time) (*Transaction, error)
	// MarkFailed moves a Pending transaction to Failed. No match is not an
	// error: the gateway expects an ack either way.
	MarkFailed(ctx context.Context, gatewayTranID string) error
	// Verify stamps a cash transaction Verified with the confirming rider.
	Verify(ctx context.Context, id, riderID string, at time.Time) (*Transaction, error)
}

const txnColumns = `id, order_id, customer_id, amount::text, payment_method, payment_status,
       COALESCE(gateway_tran_id,''), COALESCE(session_id,''), gateway_data,
       verified_by, verified_at, created_at`

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Create(ctx context.Context, t *Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
    INSERT INTO transactions (id, order_id, customer_id, amount, payment_method,
                              payment_status, gateway_tran_id, session_id, gateway_data, created_at)
    VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),NULLIF($8,''),$9,NOW())
  `, t.ID, t.OrderID, t.CustomerID, t.Amount, t.Method, t.Status,
		t.GatewayTranID, t.SessionID, t.GatewayData)
	if err != nil {
		// The unique index on order_id is the backstop for two initiations
		// racing past the existence check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyInitiated
		}
		return err
	}
	return nil
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Transaction, error) {
	return r.getWhere(ctx, `id=$1`, id)
}

func (r *PGRepo) GetByGatewayTranID(ctx context.Context, tranID string) (*Transaction, error) {
	return r.getWhere(ctx, `gateway_tran_id=$1`, tranID)
}

func (r *PGRepo) getWhere(ctx context.Context, cond string, arg any) (*Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var t Transaction
	err := r.db.QueryRow(ctx, `SELECT `+txnColumns+` FROM transactions WHERE `+cond, arg).
		Scan(&t.ID, &t.OrderID, &t.CustomerID, &t.Amount, &t.Method, &t.Status,
			&t.GatewayTranID, &t.SessionID, &t.GatewayData, &t.VerifiedBy, &t.VerifiedAt, &t.CreatedAt)
	if err != nil {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *PGRepo) ListByOrder(ctx context.Context, orderID string) ([]Transaction, error) {
	return r.list(ctx, `SELECT `+txnColumns+` FROM transactions WHERE order_id=$1 ORDER BY created_at DESC`, orderID)
}

func (r *PGRepo) List(ctx context.Context) ([]Transaction, error) {
	return r.list(ctx, `SELECT `+txnColumns+` FROM transactions ORDER BY created_at DESC`)
}

func (r *PGRepo) list(ctx context.Context, q string, args ...any) ([]Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.OrderID, &t.CustomerID, &t.Amount, &t.Method, &t.Status,
			&t.GatewayTranID, &t.SessionID, &t.GatewayData, &t.VerifiedBy, &t.VerifiedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PGRepo) MarkCompleted(ctx context.Context, gatewayTranID string, gatewayData []byte, at time.Time) (*Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE transactions
    SET payment_status = $2, verified_at = $3, gateway_data = $4
    WHERE gateway_tran_id = $1 AND payment_status IN ($5, $2)
  `, gatewayTranID, StatusCompleted, at, gatewayData, StatusPending)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return r.GetByGatewayTranID(ctx, gatewayTranID)
}

func (r *PGRepo) MarkFailed(ctx context.Context, gatewayTranID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
    UPDATE transactions
    SET payment_status = $2
    WHERE gateway_tran_id = $1 AND payment_status = $3
  `, gatewayTranID, StatusFailed, StatusPending)
	return err
}

func (r *PGRepo) Verify(ctx context.Context, id, riderID string, at time.Time) (*Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
    UPDATE transactions
    SET payment_status = $2, verified_by = $3, verified_at = $4
    WHERE id = $1 AND payment_method = $5 AND payment_status <> $2
  `, id, StatusVerified, riderID, at, MethodCash)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		// Either gone or a concurrent verification got there first.
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, ErrNotFound
		}
		return nil, ErrAlreadyVerified
	}
	return r.GetByID(ctx, id)
}
