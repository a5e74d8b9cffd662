package dentist

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

type mockRepo struct {
	dentists map[uuid.UUID]*Dentist
}

func newMockRepo() *mockRepo {
	return &mockRepo{dentists: make(map[uuid.UUID]*Dentist)}
}

func (m *mockRepo) licenseTaken(license string, exclude uuid.UUID) bool {
	for _, d := range m.dentists {
		if d.LicenseNumber == license && d.ID != exclude {
			return true
		}
	}
	return false
}

func (m *mockRepo) Create(_ context.Context, d *Dentist) error {
	if m.licenseTaken(d.LicenseNumber, uuid.Nil) {
		return apperr.Conflict("license number %s is already registered", d.LicenseNumber)
	}
	d.ID = uuid.New()
	d.Active = true
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	cp := *d
	m.dentists[d.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*Dentist, error) {
	d, ok := m.dentists[id]
	if !ok || !d.Active {
		return nil, apperr.NotFound("dentist not found")
	}
	cp := *d
	return &cp, nil
}

func (m *mockRepo) List(_ context.Context, q, specialty string, active bool, limit, offset int) ([]*Dentist, int, error) {
	var items []*Dentist
	for _, d := range m.dentists {
		if d.Active != active {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(q)) {
			continue
		}
		if specialty != "" && d.Specialty != specialty {
			continue
		}
		cp := *d
		items = append(items, &cp)
	}
	return items, len(items), nil
}

func (m *mockRepo) Update(_ context.Context, d *Dentist) error {
	existing, ok := m.dentists[d.ID]
	if !ok || !existing.Active {
		return apperr.NotFound("dentist not found")
	}
	if m.licenseTaken(d.LicenseNumber, d.ID) {
		return apperr.Conflict("license number %s is already registered", d.LicenseNumber)
	}
	cp := *d
	m.dentists[d.ID] = &cp
	return nil
}

func (m *mockRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	d, ok := m.dentists[id]
	if !ok || !d.Active {
		return apperr.NotFound("dentist not found")
	}
	d.Active = false
	return nil
}

func (m *mockRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, d := range m.dentists {
		if d.Active {
			n++
		}
	}
	return n, nil
}

func TestCreate_RequiresLicenseNumber(t *testing.T) {
	svc := NewService(newMockRepo())
	err := svc.Create(context.Background(), &Dentist{Name: "Dr. Carlos Lima"})
	if !apperr.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestCreate_DuplicateLicenseConflicts(t *testing.T) {
	svc := NewService(newMockRepo())

	first := &Dentist{Name: "Dr. Carlos Lima", LicenseNumber: "CRO-SP-12345"}
	if err := svc.Create(context.Background(), first); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := &Dentist{Name: "Dra. Paula Reis", LicenseNumber: "CRO-SP-12345"}
	if err := svc.Create(context.Background(), dup); !apperr.IsConflict(err) {
		t.Errorf("expected Conflict for duplicate license, got %v", err)
	}
}

func TestUpdate_LicenseCollisionConflicts(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	a := &Dentist{Name: "Dr. Carlos Lima", LicenseNumber: "CRO-SP-11111"}
	b := &Dentist{Name: "Dra. Paula Reis", LicenseNumber: "CRO-SP-22222"}
	for _, d := range []*Dentist{a, b} {
		if err := svc.Create(context.Background(), d); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	_, err := svc.Update(context.Background(), b.ID, &Dentist{
		Name:          b.Name,
		LicenseNumber: "CRO-SP-11111",
	})
	if !apperr.IsConflict(err) {
		t.Errorf("expected Conflict when taking another dentist's license, got %v", err)
	}
}

func TestList_NameSearchAndActiveFilter(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	kept := &Dentist{Name: "Dr. Carlos Lima", LicenseNumber: "CRO-SP-11111"}
	gone := &Dentist{Name: "Dra. Paula Reis", LicenseNumber: "CRO-SP-22222"}
	for _, d := range []*Dentist{kept, gone} {
		if err := svc.Create(context.Background(), d); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := svc.Delete(context.Background(), gone.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	_, total, err := svc.List(context.Background(), "carlos", "", true, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Errorf("expected name search to match one active dentist, got %d", total)
	}

	items, total, err := svc.List(context.Background(), "", "", false, 20, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || items[0].ID != gone.ID {
		t.Errorf("expected only the deactivated dentist, got %d rows", total)
	}
}

func TestDelete_SoftDeletes(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	d := &Dentist{Name: "Dr. Carlos Lima", LicenseNumber: "CRO-SP-12345"}
	if err := svc.Create(context.Background(), d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), d.ID); !apperr.IsNotFound(err) {
		t.Errorf("expected NotFound after soft delete, got %v", err)
	}
	if _, ok := repo.dentists[d.ID]; !ok {
		t.Error("soft delete must not remove the row")
	}
}
