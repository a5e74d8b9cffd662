package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

// mockRepo records the arguments the service passes down and returns
// canned aggregates.
type mockRepo struct {
	recent      []*RecentAppointment
	lastLimit   int
	lastYear    int
	lastMonth   time.Month
	monthCounts map[int]int
}

func (m *mockRepo) AppointmentStats(_ context.Context, _ time.Time) (*Stats, error) {
	return &Stats{TodayAppointments: 4, TodayCompleted: 1}, nil
}

func (m *mockRepo) RecentAppointments(_ context.Context, _ time.Time, limit int) ([]*RecentAppointment, error) {
	m.lastLimit = limit
	return m.recent, nil
}

func (m *mockRepo) MonthlyCounts(_ context.Context, year int, month time.Month) (map[int]int, error) {
	m.lastYear = year
	m.lastMonth = month
	return m.monthCounts, nil
}

type fixedCounter int

func (c fixedCounter) CountActive(_ context.Context) (int, error) { return int(c), nil }

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, fixedCounter(120), fixedCounter(7))
}

func TestRecentAppointments_LimitDefaultsAndCaps(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)

	if _, err := svc.RecentAppointments(context.Background(), 0); err != nil {
		t.Fatalf("RecentAppointments: %v", err)
	}
	if repo.lastLimit != defaultRecentLimit {
		t.Errorf("expected default limit %d, got %d", defaultRecentLimit, repo.lastLimit)
	}

	if _, err := svc.RecentAppointments(context.Background(), 500); err != nil {
		t.Fatalf("RecentAppointments: %v", err)
	}
	if repo.lastLimit != maxRecentLimit {
		t.Errorf("expected limit capped at %d, got %d", maxRecentLimit, repo.lastLimit)
	}
}

func TestRecentAppointments_ProjectsDentistSpecialty(t *testing.T) {
	row := &RecentAppointment{
		ID:      uuid.New(),
		Status:  "scheduled",
		Patient: PersonRef{ID: uuid.New(), Name: "Maria Silva"},
		Dentist: DentistRef{ID: uuid.New(), Name: "Dr. Carlos Lima", Specialty: "Orthodontics"},
	}
	svc := newTestService(&mockRepo{recent: []*RecentAppointment{row}})

	items, err := svc.RecentAppointments(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentAppointments: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one row, got %d", len(items))
	}
	got := items[0].Dentist
	if got.Name != "Dr. Carlos Lima" || got.Specialty != "Orthodontics" {
		t.Errorf("dentist projection lost fields: %+v", got)
	}
	if items[0].Patient.Name != "Maria Silva" {
		t.Errorf("patient projection lost fields: %+v", items[0].Patient)
	}
}

func TestMonthlyCounts_ValidatesMonth(t *testing.T) {
	svc := newTestService(&mockRepo{})

	if _, err := svc.MonthlyCounts(context.Background(), 2026, 0); !apperr.IsValidation(err) {
		t.Errorf("expected Validation for month 0, got %v", err)
	}
	if _, err := svc.MonthlyCounts(context.Background(), 2026, 13); !apperr.IsValidation(err) {
		t.Errorf("expected Validation for month 13, got %v", err)
	}
}

func TestMonthlyCounts_PassesThroughBuckets(t *testing.T) {
	repo := &mockRepo{monthCounts: map[int]int{3: 2, 15: 1}}
	svc := newTestService(repo)

	counts, err := svc.MonthlyCounts(context.Background(), 2026, 3)
	if err != nil {
		t.Fatalf("MonthlyCounts: %v", err)
	}
	if repo.lastYear != 2026 || repo.lastMonth != time.March {
		t.Errorf("unexpected window %d-%d", repo.lastYear, repo.lastMonth)
	}
	if counts[3] != 2 || counts[15] != 1 {
		t.Errorf("expected {3:2, 15:1}, got %v", counts)
	}
	if len(counts) != 2 {
		t.Errorf("expected days without appointments to be absent, got %v", counts)
	}
}

func TestStats_MergesRosterCounts(t *testing.T) {
	svc := newTestService(&mockRepo{})
	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TodayAppointments != 4 || stats.TodayCompleted != 1 {
		t.Errorf("unexpected appointment counts %+v", stats)
	}
	if stats.ActivePatients != 120 {
		t.Errorf("expected active patients from the patient repository, got %d", stats.ActivePatients)
	}
	if stats.ActiveDentists != 7 {
		t.Errorf("expected active dentists from the dentist repository, got %d", stats.ActiveDentists)
	}
}
