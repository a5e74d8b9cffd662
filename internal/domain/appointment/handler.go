package appointment

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/platform/apperr"
	"github.com/odontosys/odontosys/internal/platform/auth"
	"github.com/odontosys/odontosys/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/appointments", h.List)
	api.GET("/appointments/:id", h.Get)
	api.GET("/appointments/:id/status-log", h.GetStatusLog)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleFrontDesk))
	write.POST("/appointments", h.Create)
	write.PUT("/appointments/:id", h.Update)
	write.PATCH("/appointments/:id/status", h.SetStatus)
	write.DELETE("/appointments/:id", h.Cancel)
}

func actor(c echo.Context) (uuid.UUID, error) {
	actorID, ok := auth.ActorFromContext(c)
	if !ok {
		return uuid.Nil, apperr.Unauthorized("acting user could not be resolved")
	}
	return actorID, nil
}

func (h *Handler) Create(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return apperr.Validation("invalid request body")
	}
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	if err := h.svc.Create(c.Request().Context(), &a, actorID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}
	a, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) List(c echo.Context) error {
	var f ListFilter
	if p := c.QueryParam("patient_id"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			return apperr.Validation("invalid patient_id")
		}
		f.PatientID = id
	}
	if p := c.QueryParam("dentist_id"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			return apperr.Validation("invalid dentist_id")
		}
		f.DentistID = id
	}
	if p := c.QueryParam("status"); p != "" {
		if !ValidStatus(p) {
			return apperr.Validation("invalid status %q", p)
		}
		f.Status = p
	}
	if p := c.QueryParam("date"); p != "" {
		day, err := time.Parse("2006-01-02", p)
		if err != nil {
			return apperr.Validation("invalid date, expected YYYY-MM-DD")
		}
		f.Date = day
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return apperr.Validation("invalid request body")
	}
	a, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return apperr.Validation("invalid request body")
	}
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	a, err := h.svc.SetStatus(c.Request().Context(), id, body.Status, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) Cancel(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}
	actorID, err := actor(c)
	if err != nil {
		return err
	}
	a, err := h.svc.Cancel(c.Request().Context(), id, actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) GetStatusLog(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid appointment id")
	}
	entries, err := h.svc.StatusLog(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
