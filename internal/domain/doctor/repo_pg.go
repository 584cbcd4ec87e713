package doctor

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

const doctorCols = `id, user_id, specialty, license_number, years_of_experience,
	consultation_fee, bio, gender, created_at, updated_at`

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.UserID, &d.Specialty, &d.LicenseNumber, &d.YearsOfExperience,
		&d.ConsultationFee, &d.Bio, &d.Gender, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor (id, user_id, specialty, license_number, years_of_experience,
			consultation_fee, bio, gender)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.UserID, d.Specialty, d.LicenseNumber, d.YearsOfExperience,
		d.ConsultationFee, d.Bio, d.Gender)
	return err
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE user_id = $1`, userID))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE doctor SET specialty=$2, license_number=$3, years_of_experience=$4,
			consultation_fee=$5, bio=$6, gender=$7, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Specialty, d.LicenseNumber, d.YearsOfExperience,
		d.ConsultationFee, d.Bio, d.Gender)
	return err
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	return err
}

func (r *doctorRepoPG) List(ctx context.Context, specialty string, limit, offset int) ([]*Doctor, int, error) {
	var (
		total int
		rows  pgx.Rows
		err   error
	)
	if specialty != "" {
		if err = r.pool.QueryRow(ctx,
			`SELECT COUNT(*) FROM doctor WHERE specialty ILIKE '%' || $1 || '%'`, specialty).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.pool.Query(ctx,
			`SELECT `+doctorCols+` FROM doctor WHERE specialty ILIKE '%' || $3 || '%'
			 ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset, specialty)
	} else {
		if err = r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
			return nil, 0, err
		}
		rows, err = r.pool.Query(ctx,
			`SELECT `+doctorCols+` FROM doctor ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	}
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}

func (r *doctorRepoPG) ExistsForUser(ctx context.Context, userID uuid.UUID, excluding uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM doctor WHERE user_id = $1 AND id <> $2)`,
		userID, excluding).Scan(&exists)
	return exists, err
}
