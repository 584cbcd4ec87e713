package consultation

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type consultationRepoPG struct{ pool *pgxpool.Pool }

func NewConsultationRepoPG(pool *pgxpool.Pool) ConsultationRepository {
	return &consultationRepoPG{pool: pool}
}

const consultationCols = `id, patient_id, doctor_id, consultation_type, status,
	scan_id, notes, created_at, updated_at`

func (r *consultationRepoPG) scanConsultation(row pgx.Row) (*Consultation, error) {
	var c Consultation
	err := row.Scan(&c.ID, &c.PatientID, &c.DoctorID, &c.ConsultationType, &c.Status,
		&c.ScanID, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return &c, err
}

func (r *consultationRepoPG) Create(ctx context.Context, c *Consultation) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO consultation (id, patient_id, doctor_id, consultation_type, status, scan_id, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		c.ID, c.PatientID, c.DoctorID, c.ConsultationType, c.Status, c.ScanID, c.Notes)
	return err
}

func (r *consultationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return r.scanConsultation(r.pool.QueryRow(ctx, `SELECT `+consultationCols+` FROM consultation WHERE id = $1`, id))
}

func (r *consultationRepoPG) Update(ctx context.Context, c *Consultation) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE consultation SET consultation_type=$2, status=$3, scan_id=$4, notes=$5, updated_at=NOW()
		WHERE id = $1`,
		c.ID, c.ConsultationType, c.Status, c.ScanID, c.Notes)
	return err
}

func (r *consultationRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM consultation WHERE id = $1`, id)
	return err
}

func (r *consultationRepoPG) List(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM consultation`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+consultationCols+` FROM consultation ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(rows, total)
}

func (r *consultationRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return r.listBy(ctx, `patient_id`, patientID, limit, offset)
}

func (r *consultationRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return r.listBy(ctx, `doctor_id`, doctorID, limit, offset)
}

func (r *consultationRepoPG) listBy(ctx context.Context, col string, id uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM consultation WHERE `+col+` = $1`, id).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+consultationCols+` FROM consultation WHERE `+col+` = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		id, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return r.collect(rows, total)
}

func (r *consultationRepoPG) collect(rows pgx.Rows, total int) ([]*Consultation, int, error) {
	defer rows.Close()
	var items []*Consultation
	for rows.Next() {
		c, err := r.scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}
