package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type paymentRepoPG struct{ pool *pgxpool.Pool }

func NewPaymentRepoPG(pool *pgxpool.Pool) PaymentRepository { return &paymentRepoPG{pool: pool} }

const paymentCols = `id, user_id, amount, currency, payment_method, status, reference, created_at, updated_at`

func (r *paymentRepoPG) scanPayment(row pgx.Row) (*Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.Currency, &p.PaymentMethod, &p.Status,
		&p.Reference, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *paymentRepoPG) Create(ctx context.Context, p *Payment) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO payment (id, user_id, amount, currency, payment_method, status, reference)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.UserID, p.Amount, p.Currency, p.PaymentMethod, p.Status, p.Reference)
	return err
}

func (r *paymentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return r.scanPayment(r.pool.QueryRow(ctx, `SELECT `+paymentCols+` FROM payment WHERE id = $1`, id))
}

func (r *paymentRepoPG) Update(ctx context.Context, p *Payment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE payment SET amount=$2, currency=$3, payment_method=$4, status=$5, reference=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Amount, p.Currency, p.PaymentMethod, p.Status, p.Reference)
	return err
}

func (r *paymentRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payment WHERE id = $1`, id)
	return err
}

func (r *paymentRepoPG) List(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+paymentCols+` FROM payment ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(rows, total)
}

func (r *paymentRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM payment WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentCols+` FROM payment WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(rows, total)
}

func (r *paymentRepoPG) collect(rows pgx.Rows, total int) ([]*Payment, int, error) {
	defer rows.Close()
	var items []*Payment
	for rows.Next() {
		p, err := r.scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}
