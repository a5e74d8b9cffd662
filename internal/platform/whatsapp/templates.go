package whatsapp

import (
	"fmt"
	"strings"
	"time"
)

// Template IDs for the built-in appointment messages.
const (
	TemplateReminder     = "appointment_reminder"
	TemplateConfirmation = "appointment_confirmation"
	TemplateCancellation = "appointment_cancellation"
)

var builtInTemplates = map[string]string{
	TemplateReminder: "Olá {{patient_name}}! Lembrete: você tem uma consulta com {{dentist_name}} " +
		"no dia {{date}} às {{time}}. Em caso de imprevisto, entre em contato para reagendar.",
	TemplateConfirmation: "Olá {{patient_name}}! Sua consulta com {{dentist_name}} foi confirmada " +
		"para o dia {{date}} às {{time}}. Até lá!",
	TemplateCancellation: "Olá {{patient_name}}, sua consulta com {{dentist_name}} " +
		"do dia {{date}} às {{time}} foi cancelada. Entre em contato para reagendar.",
}

// RenderTemplate performs {{key}} replacement on a built-in template.
// Keys absent from data are left as-is in the output.
func RenderTemplate(templateID string, data map[string]string) (string, error) {
	tpl, ok := builtInTemplates[templateID]
	if !ok {
		return "", fmt.Errorf("template %q not found", templateID)
	}
	out := tpl
	for key, value := range data {
		out = strings.ReplaceAll(out, "{{"+key+"}}", value)
	}
	return out, nil
}

// AppointmentData builds the interpolation map for an appointment message.
// Dates render as dd/MM/yyyy and times as HH:mm.
func AppointmentData(patientName, dentistName string, startsAt time.Time) map[string]string {
	return map[string]string{
		"patient_name": patientName,
		"dentist_name": dentistName,
		"date":         startsAt.Format("02/01/2006"),
		"time":         startsAt.Format("15:04"),
	}
}
