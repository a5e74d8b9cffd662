package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const patientCols = `id, name, email, phone, birth_date, notes, active, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.BirthDate,
		&p.Notes, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("patient not found")
	}
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO patients (id, name, email, phone, birth_date, notes)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING active, created_at, updated_at`,
		p.ID, p.Name, p.Email, p.Phone, p.BirthDate, p.Notes,
	).Scan(&p.Active, &p.CreatedAt, &p.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx,
		`SELECT `+patientCols+` FROM patients WHERE id = $1 AND active`, id))
}

func (r *repoPG) List(ctx context.Context, q string, active bool, limit, offset int) ([]*Patient, int, error) {
	query := `SELECT ` + patientCols + ` FROM patients WHERE active = $1`
	countQuery := `SELECT COUNT(*) FROM patients WHERE active = $1`
	args := []interface{}{active}
	idx := 2

	if q != "" {
		clause := fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d)`, idx, idx)
		query += clause
		countQuery += clause
		args = append(args, "%"+q+"%")
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET name=$2, email=$3, phone=$4, birth_date=$5, notes=$6, updated_at=NOW()
		WHERE id = $1 AND active`,
		p.ID, p.Name, p.Email, p.Phone, p.BirthDate, p.Notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient not found")
	}
	return nil
}

func (r *repoPG) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE patients SET active = FALSE, updated_at = NOW() WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("patient not found")
	}
	return nil
}

func (r *repoPG) CountActive(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM patients WHERE active`).Scan(&total)
	return total, err
}
