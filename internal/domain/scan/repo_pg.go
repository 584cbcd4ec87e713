package scan

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type scanRepoPG struct{ pool *pgxpool.Pool }

func NewScanRepoPG(pool *pgxpool.Pool) ScanRepository { return &scanRepoPG{pool: pool} }

const scanCols = `id, user_id, scan_type, image_path, result_summary, status, created_at, updated_at`

func (r *scanRepoPG) scanRow(row pgx.Row) (*Scan, error) {
	var s Scan
	err := row.Scan(&s.ID, &s.UserID, &s.ScanType, &s.ImagePath, &s.ResultSummary,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	return &s, err
}

func (r *scanRepoPG) Create(ctx context.Context, s *Scan) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO scan (id, user_id, scan_type, image_path, result_summary, status)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		s.ID, s.UserID, s.ScanType, s.ImagePath, s.ResultSummary, s.Status)
	return err
}

func (r *scanRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Scan, error) {
	return r.scanRow(r.pool.QueryRow(ctx, `SELECT `+scanCols+` FROM scan WHERE id = $1`, id))
}

func (r *scanRepoPG) Update(ctx context.Context, s *Scan) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE scan SET scan_type=$2, image_path=$3, result_summary=$4, status=$5, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.ScanType, s.ImagePath, s.ResultSummary, s.Status)
	return err
}

func (r *scanRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Scan, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM scan WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+scanCols+` FROM scan WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Scan
	for rows.Next() {
		s, err := r.scanRow(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
