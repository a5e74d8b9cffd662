package notification

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/platform/apperr"
	"github.com/odontosys/odontosys/internal/platform/auth"
	"github.com/odontosys/odontosys/internal/platform/whatsapp"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleFrontDesk))
	g.POST("/notifications/send", h.Send)
	g.POST("/notifications/appointment-reminder", h.sendTemplate(whatsapp.TemplateReminder))
	g.POST("/notifications/appointment-confirmation", h.sendTemplate(whatsapp.TemplateConfirmation))
	g.POST("/notifications/appointment-cancellation", h.sendTemplate(whatsapp.TemplateCancellation))
}

func (h *Handler) Send(c echo.Context) error {
	var body struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return apperr.Validation("invalid request body")
	}
	if strings.TrimSpace(body.Phone) == "" || strings.TrimSpace(body.Message) == "" {
		return apperr.Validation("phone and message are required")
	}

	result, err := h.svc.SendText(c.Request().Context(), body.Phone, body.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) sendTemplate(templateID string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body struct {
			AppointmentID string `json:"appointment_id"`
		}
		if err := c.Bind(&body); err != nil {
			return apperr.Validation("invalid request body")
		}
		id, err := uuid.Parse(body.AppointmentID)
		if err != nil {
			return apperr.Validation("invalid appointment_id")
		}

		result, err := h.svc.SendAppointmentMessage(c.Request().Context(), id, templateID)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, result)
	}
}
