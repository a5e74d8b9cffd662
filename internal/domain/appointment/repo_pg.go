package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const apptCols = `id, patient_id, dentist_id, starts_at, ends_at, status, notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientID, &a.DentistID, &a.StartsAt, &a.EndsAt,
		&a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("appointment not found")
	}
	return &a, err
}

// exclusionViolation matches the exclusion_violation SQLSTATE raised by
// the no-overlap constraint when two transactions race past the
// in-transaction conflict check.
func exclusionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

// hasConflict evaluates the half-open overlap test [a,b) x [c,d):
// a < d AND c < b. Touching intervals do not conflict.
func (r *repoPG) hasConflict(ctx context.Context, q queryable, dentistID uuid.UUID, startsAt, endsAt time.Time, excludeID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (
		SELECT 1 FROM appointments
		WHERE dentist_id = $1 AND status <> 'cancelled'
		  AND starts_at < $3 AND $2 < ends_at`
	args := []interface{}{dentistID, startsAt, endsAt}
	if excludeID != uuid.Nil {
		query += ` AND id <> $4`
		args = append(args, excludeID)
	}
	query += `)`

	var exists bool
	err := q.QueryRow(ctx, query, args...).Scan(&exists)
	return exists, err
}

func (r *repoPG) HasConflict(ctx context.Context, dentistID uuid.UUID, startsAt, endsAt time.Time, excludeID uuid.UUID) (bool, error) {
	return r.hasConflict(ctx, r.pool, dentistID, startsAt, endsAt, excludeID)
}

func appendLog(ctx context.Context, q queryable, appointmentID uuid.UUID, status string, actorID uuid.UUID) error {
	_, err := q.Exec(ctx, `
		INSERT INTO appointment_status_log (id, appointment_id, status, actor_id)
		VALUES ($1,$2,$3,$4)`,
		uuid.New(), appointmentID, status, actorID)
	return err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment, actorID uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	conflict, err := r.hasConflict(ctx, tx, a.DentistID, a.StartsAt, a.EndsAt, uuid.Nil)
	if err != nil {
		return err
	}
	if conflict {
		return apperr.Conflict("dentist already has an appointment in this interval")
	}

	a.ID = uuid.New()
	a.Status = StatusScheduled
	if err := tx.QueryRow(ctx, `
		INSERT INTO appointments (id, patient_id, dentist_id, starts_at, ends_at, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING created_at, updated_at`,
		a.ID, a.PatientID, a.DentistID, a.StartsAt, a.EndsAt, a.Status, a.Notes,
	).Scan(&a.CreatedAt, &a.UpdatedAt); err != nil {
		if exclusionViolation(err) {
			return apperr.Conflict("dentist already has an appointment in this interval")
		}
		return err
	}

	if err := appendLog(ctx, tx, a.ID, a.Status, actorID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if exclusionViolation(err) {
			return apperr.Conflict("dentist already has an appointment in this interval")
		}
		return err
	}
	return nil
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx,
		`SELECT `+apptCols+` FROM appointments WHERE id = $1`, id))
}

func (r *repoPG) List(ctx context.Context, f ListFilter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + apptCols + ` FROM appointments WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM appointments WHERE 1=1`
	var args []interface{}
	idx := 1

	addClause := func(clause string, value interface{}) {
		query += fmt.Sprintf(clause, idx)
		countQuery += fmt.Sprintf(clause, idx)
		args = append(args, value)
		idx++
	}

	if f.PatientID != uuid.Nil {
		addClause(` AND patient_id = $%d`, f.PatientID)
	}
	if f.DentistID != uuid.Nil {
		addClause(` AND dentist_id = $%d`, f.DentistID)
	}
	if f.Status != "" {
		addClause(` AND status = $%d`, f.Status)
	}
	if !f.Date.IsZero() {
		day := time.Date(f.Date.Year(), f.Date.Month(), f.Date.Day(), 0, 0, 0, 0, f.Date.Location())
		addClause(` AND starts_at >= $%d`, day)
		addClause(` AND starts_at < $%d`, day.AddDate(0, 0, 1))
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY starts_at ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	conflict, err := r.hasConflict(ctx, tx, a.DentistID, a.StartsAt, a.EndsAt, a.ID)
	if err != nil {
		return err
	}
	if conflict {
		return apperr.Conflict("dentist already has an appointment in this interval")
	}

	tag, err := tx.Exec(ctx, `
		UPDATE appointments SET patient_id=$2, dentist_id=$3, starts_at=$4, ends_at=$5, notes=$6, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientID, a.DentistID, a.StartsAt, a.EndsAt, a.Notes)
	if err != nil {
		if exclusionViolation(err) {
			return apperr.Conflict("dentist already has an appointment in this interval")
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("appointment not found")
	}

	if err := tx.Commit(ctx); err != nil {
		if exclusionViolation(err) {
			return apperr.Conflict("dentist already has an appointment in this interval")
		}
		return err
	}
	return nil
}

func (r *repoPG) SetStatus(ctx context.Context, id uuid.UUID, status string, actorID uuid.UUID) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Reactivating a cancelled appointment re-enters the no-overlap
	// constraint; a slot rebooked in the meantime raises 23P01 here.
	a, err := scanAppointment(tx.QueryRow(ctx, `
		UPDATE appointments SET status=$2, updated_at=NOW()
		WHERE id = $1
		RETURNING `+apptCols, id, status))
	if err != nil {
		if exclusionViolation(err) {
			return nil, apperr.Conflict("dentist already has an appointment in this interval")
		}
		return nil, err
	}

	if err := appendLog(ctx, tx, id, status, actorID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if exclusionViolation(err) {
			return nil, apperr.Conflict("dentist already has an appointment in this interval")
		}
		return nil, err
	}
	return a, nil
}

func (r *repoPG) StatusLog(ctx context.Context, appointmentID uuid.UUID) ([]*StatusLog, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, appointment_id, status, actor_id, created_at
		FROM appointment_status_log
		WHERE appointment_id = $1
		ORDER BY created_at ASC`, appointmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*StatusLog
	for rows.Next() {
		var e StatusLog
		if err := rows.Scan(&e.ID, &e.AppointmentID, &e.Status, &e.ActorID, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
