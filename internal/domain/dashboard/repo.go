package dashboard

import (
	"context"
	"time"
)

// Repository aggregates read-only appointment counts. Roster sizes come
// from the patient and dentist repositories; queries are independent and
// carry no write side effects.
type Repository interface {
	// AppointmentStats fills the appointment fields of the snapshot;
	// the service adds the active roster counts.
	AppointmentStats(ctx context.Context, now time.Time) (*Stats, error)
	RecentAppointments(ctx context.Context, day time.Time, limit int) ([]*RecentAppointment, error)
	// MonthlyCounts buckets a month's non-cancelled appointments by
	// calendar day-of-month.
	MonthlyCounts(ctx context.Context, year int, month time.Month) (map[int]int, error)
}
