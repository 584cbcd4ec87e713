package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepoPG struct{ pool *pgxpool.Pool }

func NewUserRepoPG(pool *pgxpool.Pool) UserRepository { return &userRepoPG{pool: pool} }

const userCols = `id, username, email, first_name, last_name, role,
	subscription_type, is_active, location, password_hash, created_at, updated_at`

func (r *userRepoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role,
		&u.SubscriptionType, &u.IsActive, &u.Location, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return &u, err
}

func (r *userRepoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO app_user (id, username, email, first_name, last_name, role,
			subscription_type, is_active, location, password_hash)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Role,
		u.SubscriptionType, u.IsActive, u.Location, u.PasswordHash)
	return err
}

func (r *userRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE id = $1`, id))
}

func (r *userRepoPG) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM app_user WHERE username = $1`, username))
}

func (r *userRepoPG) Update(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE app_user SET username=$2, email=$3, first_name=$4, last_name=$5, role=$6,
			subscription_type=$7, is_active=$8, location=$9, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.FirstName, u.LastName, u.Role,
		u.SubscriptionType, u.IsActive, u.Location)
	return err
}

func (r *userRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	return err
}

func (r *userRepoPG) List(ctx context.Context, limit, offset int) ([]*User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM app_user`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM app_user ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

func (r *userRepoPG) ListUnassigned(ctx context.Context, kind UnassignedKind, limit, offset int) ([]*User, int, error) {
	table := "profile"
	if kind == UnassignedDoctor {
		table = "doctor"
	}
	where := ` WHERE NOT EXISTS (SELECT 1 FROM ` + table + ` t WHERE t.user_id = app_user.id)`

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM app_user`+where).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+userCols+` FROM app_user`+where+` ORDER BY username LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*User
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	return items, total, rows.Err()
}

func (r *userRepoPG) UsernameTaken(ctx context.Context, username string, excluding uuid.UUID) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM app_user WHERE username = $1 AND id <> $2)`,
		username, excluding).Scan(&taken)
	return taken, err
}

func (r *userRepoPG) EmailTaken(ctx context.Context, email string, excluding uuid.UUID) (bool, error) {
	var taken bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM app_user WHERE email = $1 AND id <> $2)`,
		email, excluding).Scan(&taken)
	return taken, err
}
