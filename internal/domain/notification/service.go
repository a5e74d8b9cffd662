// Package notification resolves appointments to patient contact details
// and dispatches WhatsApp messages. Provider failures come back in the
// result payload so a failed send never fails the scheduling operation
// that triggered it.
package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/odontosys/odontosys/internal/domain/appointment"
	"github.com/odontosys/odontosys/internal/domain/dentist"
	"github.com/odontosys/odontosys/internal/domain/patient"
	"github.com/odontosys/odontosys/internal/platform/apperr"
	"github.com/odontosys/odontosys/internal/platform/whatsapp"
)

var errSenderDisabled = errors.New("WHATSAPP_TOKEN is not set")

type AppointmentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
}

type PatientReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
}

type DentistReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*dentist.Dentist, error)
}

type Service struct {
	sender       whatsapp.Sender
	appointments AppointmentReader
	patients     PatientReader
	dentists     DentistReader
	countryCode  string
}

func NewService(sender whatsapp.Sender, appointments AppointmentReader, patients PatientReader, dentists DentistReader, countryCode string) *Service {
	return &Service{
		sender:       sender,
		appointments: appointments,
		patients:     patients,
		dentists:     dentists,
		countryCode:  countryCode,
	}
}

// ready reports whether a sender is wired. Deployments without provider
// credentials run with a nil sender and fail every dispatch as Upstream.
func (s *Service) ready() error {
	if s.sender == nil {
		return apperr.Upstream(errSenderDisabled, "whatsapp sender is not configured")
	}
	return nil
}

// SendText delivers a free-form message to a raw phone number.
func (s *Service) SendText(ctx context.Context, phone, message string) (whatsapp.SendResult, error) {
	if err := s.ready(); err != nil {
		return whatsapp.SendResult{}, err
	}
	normalized := whatsapp.NormalizePhone(phone, s.countryCode)
	if normalized == "" {
		return whatsapp.SendResult{Success: false, Error: "phone number has no digits"}, nil
	}
	return s.sender.SendText(ctx, normalized, message), nil
}

// SendAppointmentMessage renders one of the built-in templates for the
// appointment and sends it to the patient's phone.
func (s *Service) SendAppointmentMessage(ctx context.Context, appointmentID uuid.UUID, templateID string) (whatsapp.SendResult, error) {
	if err := s.ready(); err != nil {
		return whatsapp.SendResult{}, err
	}
	a, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return whatsapp.SendResult{}, err
	}
	p, err := s.patients.GetByID(ctx, a.PatientID)
	if err != nil {
		return whatsapp.SendResult{}, err
	}
	d, err := s.dentists.GetByID(ctx, a.DentistID)
	if err != nil {
		return whatsapp.SendResult{}, err
	}

	message, err := whatsapp.RenderTemplate(templateID, whatsapp.AppointmentData(p.Name, d.Name, a.StartsAt))
	if err != nil {
		return whatsapp.SendResult{}, err
	}

	return s.SendText(ctx, p.Phone, message)
}
