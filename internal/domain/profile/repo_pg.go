package profile

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type profileRepoPG struct{ pool *pgxpool.Pool }

func NewProfileRepoPG(pool *pgxpool.Pool) ProfileRepository { return &profileRepoPG{pool: pool} }

const profileCols = `id, user_id, phone_number, address, date_of_birth, gender,
	profile_picture, created_at, updated_at`

func (r *profileRepoPG) scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.UserID, &p.PhoneNumber, &p.Address, &p.DateOfBirth, &p.Gender,
		&p.ProfilePicture, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *profileRepoPG) Create(ctx context.Context, p *Profile) error {
	p.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profile (id, user_id, phone_number, address, date_of_birth, gender, profile_picture)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.UserID, p.PhoneNumber, p.Address, p.DateOfBirth, p.Gender, p.ProfilePicture)
	return err
}

func (r *profileRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return r.scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileCols+` FROM profile WHERE id = $1`, id))
}

func (r *profileRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return r.scanProfile(r.pool.QueryRow(ctx, `SELECT `+profileCols+` FROM profile WHERE user_id = $1`, userID))
}

func (r *profileRepoPG) Update(ctx context.Context, p *Profile) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profile SET phone_number=$2, address=$3, date_of_birth=$4, gender=$5,
			profile_picture=$6, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.PhoneNumber, p.Address, p.DateOfBirth, p.Gender, p.ProfilePicture)
	return err
}

func (r *profileRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profile WHERE id = $1`, id)
	return err
}

func (r *profileRepoPG) List(ctx context.Context, limit, offset int) ([]*Profile, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profile`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+profileCols+` FROM profile ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Profile
	for rows.Next() {
		p, err := r.scanProfile(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *profileRepoPG) ExistsForUser(ctx context.Context, userID uuid.UUID, excluding uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM profile WHERE user_id = $1 AND id <> $2)`,
		userID, excluding).Scan(&exists)
	return exists, err
}
