package notification

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/odontosys/odontosys/internal/domain/appointment"
	"github.com/odontosys/odontosys/internal/domain/dentist"
	"github.com/odontosys/odontosys/internal/domain/patient"
	"github.com/odontosys/odontosys/internal/platform/apperr"
	"github.com/odontosys/odontosys/internal/platform/whatsapp"
)

type mockAppointments struct {
	m map[uuid.UUID]*appointment.Appointment
}

func (r *mockAppointments) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.m[id]
	if !ok {
		return nil, apperr.NotFound("appointment not found")
	}
	return a, nil
}

type mockPatients struct {
	m map[uuid.UUID]*patient.Patient
}

func (r *mockPatients) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := r.m[id]
	if !ok {
		return nil, apperr.NotFound("patient not found")
	}
	return p, nil
}

type mockDentists struct {
	m map[uuid.UUID]*dentist.Dentist
}

func (r *mockDentists) GetByID(_ context.Context, id uuid.UUID) (*dentist.Dentist, error) {
	d, ok := r.m[id]
	if !ok {
		return nil, apperr.NotFound("dentist not found")
	}
	return d, nil
}

func newTestService(sender whatsapp.Sender) (*Service, uuid.UUID) {
	patientID := uuid.New()
	dentistID := uuid.New()
	apptID := uuid.New()

	svc := NewService(sender,
		&mockAppointments{m: map[uuid.UUID]*appointment.Appointment{
			apptID: {
				ID:        apptID,
				PatientID: patientID,
				DentistID: dentistID,
				StartsAt:  time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
				EndsAt:    time.Date(2026, 3, 15, 15, 0, 0, 0, time.UTC),
				Status:    appointment.StatusScheduled,
			},
		}},
		&mockPatients{m: map[uuid.UUID]*patient.Patient{
			patientID: {ID: patientID, Name: "Maria Silva", Phone: "(11) 98888-7777", Active: true},
		}},
		&mockDentists{m: map[uuid.UUID]*dentist.Dentist{
			dentistID: {ID: dentistID, Name: "Dr. Carlos Lima", Active: true},
		}},
		"55")
	return svc, apptID
}

func TestSendText_NormalizesPhone(t *testing.T) {
	sender := whatsapp.NewMockSender()
	svc, _ := newTestService(sender)

	result, err := svc.SendText(context.Background(), "(11) 98888-7777", "hello")
	if err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	calls := sender.Calls()
	if len(calls) != 1 || calls[0].Phone != "5511988887777" {
		t.Errorf("expected normalized phone 5511988887777, got %+v", calls)
	}
}

func TestSendText_RejectsDigitFreePhone(t *testing.T) {
	sender := whatsapp.NewMockSender()
	svc, _ := newTestService(sender)

	result, err := svc.SendText(context.Background(), "no digits here", "hello")
	if err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if result.Success {
		t.Error("expected failure for a phone without digits")
	}
	if len(sender.Calls()) != 0 {
		t.Error("no send should reach the provider")
	}
}

func TestSendAppointmentMessage_RendersReminder(t *testing.T) {
	sender := whatsapp.NewMockSender()
	svc, apptID := newTestService(sender)

	result, err := svc.SendAppointmentMessage(context.Background(), apptID, whatsapp.TemplateReminder)
	if err != nil {
		t.Fatalf("SendAppointmentMessage: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}

	calls := sender.Calls()
	if len(calls) != 1 {
		t.Fatalf("expected one send, got %d", len(calls))
	}
	msg := calls[0].Message
	for _, want := range []string{"Maria Silva", "Dr. Carlos Lima", "15/03/2026", "14:30"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected message to contain %q, got: %s", want, msg)
		}
	}
}

func TestSendAppointmentMessage_UnknownAppointment(t *testing.T) {
	svc, _ := newTestService(whatsapp.NewMockSender())
	_, err := svc.SendAppointmentMessage(context.Background(), uuid.New(), whatsapp.TemplateReminder)
	if !apperr.IsNotFound(err) {
		t.Errorf("expected NotFound, got %v", err)
	}
}

func TestSend_UnconfiguredSenderFailsUpstream(t *testing.T) {
	svc, apptID := newTestService(nil)

	if _, err := svc.SendText(context.Background(), "(11) 98888-7777", "hello"); !apperr.IsUpstream(err) {
		t.Errorf("expected Upstream without a configured sender, got %v", err)
	}
	if _, err := svc.SendAppointmentMessage(context.Background(), apptID, whatsapp.TemplateReminder); !apperr.IsUpstream(err) {
		t.Errorf("expected Upstream without a configured sender, got %v", err)
	}
}

func TestSendAppointmentMessage_ProviderFailureIsReportedNotFatal(t *testing.T) {
	sender := whatsapp.NewMockSender()
	sender.ShouldFail = true
	svc, apptID := newTestService(sender)

	result, err := svc.SendAppointmentMessage(context.Background(), apptID, whatsapp.TemplateConfirmation)
	if err != nil {
		t.Fatalf("provider failure must not surface as an operation error, got %v", err)
	}
	if result.Success {
		t.Error("expected the failure to be reported in the result")
	}
	if result.Error == nil {
		t.Error("expected the provider's error payload in the result")
	}
}
