package dashboard

import (
	"time"

	"github.com/google/uuid"
)

// Stats is a single snapshot of the clinic's day, assembled from
// independent read-only queries.
type Stats struct {
	TodayAppointments int `json:"today_appointments"`
	TodayPending      int `json:"today_pending"`
	TodayCompleted    int `json:"today_completed"`
	UpcomingWeek      int `json:"upcoming_week"`
	ActivePatients    int `json:"active_patients"`
	ActiveDentists    int `json:"active_dentists"`
}

// PersonRef is the minimal identity projection embedded in dashboard rows.
type PersonRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// DentistRef carries the specialty shown next to the dentist's name.
type DentistRef struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty string    `json:"specialty"`
}

// RecentAppointment is a dashboard row for one of today's appointments.
type RecentAppointment struct {
	ID       uuid.UUID  `json:"id"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   time.Time  `json:"ends_at"`
	Status   string     `json:"status"`
	Patient  PersonRef  `json:"patient"`
	Dentist  DentistRef `json:"dentist"`
}
