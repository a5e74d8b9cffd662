package dentist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const dentistCols = `id, name, license_number, specialty, email, phone, active, created_at, updated_at`

func scanDentist(row pgx.Row) (*Dentist, error) {
	var d Dentist
	err := row.Scan(&d.ID, &d.Name, &d.LicenseNumber, &d.Specialty, &d.Email,
		&d.Phone, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("dentist not found")
	}
	return &d, err
}

// uniqueViolation matches the unique_violation SQLSTATE so a duplicate
// license number maps to Conflict instead of a server error.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *repoPG) Create(ctx context.Context, d *Dentist) error {
	d.ID = uuid.New()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO dentists (id, name, license_number, specialty, email, phone)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING active, created_at, updated_at`,
		d.ID, d.Name, d.LicenseNumber, d.Specialty, d.Email, d.Phone,
	).Scan(&d.Active, &d.CreatedAt, &d.UpdatedAt)
	if uniqueViolation(err) {
		return apperr.Conflict("license number %s is already registered", d.LicenseNumber)
	}
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Dentist, error) {
	return scanDentist(r.pool.QueryRow(ctx,
		`SELECT `+dentistCols+` FROM dentists WHERE id = $1 AND active`, id))
}

func (r *repoPG) List(ctx context.Context, q, specialty string, active bool, limit, offset int) ([]*Dentist, int, error) {
	query := `SELECT ` + dentistCols + ` FROM dentists WHERE active = $1`
	countQuery := `SELECT COUNT(*) FROM dentists WHERE active = $1`
	args := []interface{}{active}
	idx := 2

	if q != "" {
		clause := fmt.Sprintf(` AND name ILIKE $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, "%"+q+"%")
		idx++
	}
	if specialty != "" {
		clause := fmt.Sprintf(` AND specialty ILIKE $%d`, idx)
		query += clause
		countQuery += clause
		args = append(args, specialty)
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

	var items []*Dentist
	for rows.Next() {
		d, err := scanDentist(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, d *Dentist) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE dentists SET name=$2, license_number=$3, specialty=$4, email=$5, phone=$6, updated_at=NOW()
		WHERE id = $1 AND active`,
		d.ID, d.Name, d.LicenseNumber, d.Specialty, d.Email, d.Phone)
	if uniqueViolation(err) {
		return apperr.Conflict("license number %s is already registered", d.LicenseNumber)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("dentist not found")
	}
	return nil
}

func (r *repoPG) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE dentists SET active = FALSE, updated_at = NOW() WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("dentist not found")
	}
	return nil
}

func (r *repoPG) CountActive(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dentists WHERE active`).Scan(&total)
	return total, err
}
