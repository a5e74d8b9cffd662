package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func dayBounds(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}

// monthBounds anchors the window in the server zone so the monthly and
// daily views agree on which day an appointment belongs to.
func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}

func (r *repoPG) AppointmentStats(ctx context.Context, now time.Time) (*Stats, error) {
	dayStart, dayEnd := dayBounds(now)
	weekEnd := dayStart.AddDate(0, 0, 7)

	var s Stats
	counts := []struct {
		dest  *int
		query string
		args  []interface{}
	}{
		{&s.TodayAppointments,
			`SELECT COUNT(*) FROM appointments WHERE starts_at >= $1 AND starts_at < $2 AND status <> 'cancelled'`,
			[]interface{}{dayStart, dayEnd}},
		{&s.TodayPending,
			`SELECT COUNT(*) FROM appointments WHERE starts_at >= $1 AND starts_at < $2 AND status IN ('scheduled','confirmed')`,
			[]interface{}{dayStart, dayEnd}},
		{&s.TodayCompleted,
			`SELECT COUNT(*) FROM appointments WHERE starts_at >= $1 AND starts_at < $2 AND status = 'completed'`,
			[]interface{}{dayStart, dayEnd}},
		{&s.UpcomingWeek,
			`SELECT COUNT(*) FROM appointments WHERE starts_at >= $1 AND starts_at < $2 AND status <> 'cancelled'`,
			[]interface{}{dayStart, weekEnd}},
	}

	for _, c := range counts {
		if err := r.pool.QueryRow(ctx, c.query, c.args...).Scan(c.dest); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

func (r *repoPG) RecentAppointments(ctx context.Context, day time.Time, limit int) ([]*RecentAppointment, error) {
	dayStart, dayEnd := dayBounds(day)

	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.starts_at, a.ends_at, a.status,
		       p.id, p.name, d.id, d.name, d.specialty
		FROM appointments a
		JOIN patients p ON p.id = a.patient_id
		JOIN dentists d ON d.id = a.dentist_id
		WHERE a.starts_at >= $1 AND a.starts_at < $2
		ORDER BY a.starts_at ASC
		LIMIT $3`, dayStart, dayEnd, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*RecentAppointment
	for rows.Next() {
		var a RecentAppointment
		if err := rows.Scan(&a.ID, &a.StartsAt, &a.EndsAt, &a.Status,
			&a.Patient.ID, &a.Patient.Name,
			&a.Dentist.ID, &a.Dentist.Name, &a.Dentist.Specialty); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

func (r *repoPG) MonthlyCounts(ctx context.Context, year int, month time.Month) (map[int]int, error) {
	monthStart, monthEnd := monthBounds(year, month)

	rows, err := r.pool.Query(ctx, `
		SELECT EXTRACT(DAY FROM starts_at)::int AS day, COUNT(*)
		FROM appointments
		WHERE starts_at >= $1 AND starts_at < $2 AND status <> 'cancelled'
		GROUP BY day
		ORDER BY day`, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var day, n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, err
		}
		counts[day] = n
	}
	return counts, rows.Err()
}
