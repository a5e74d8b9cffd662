package dentist

import (
	"net/http"
	"strconv"

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
	api.GET("/dentists", h.List)
	api.GET("/dentists/:id", h.Get)

	write := api.Group("", auth.RequireRole(auth.RoleAdmin, auth.RoleFrontDesk))
	write.POST("/dentists", h.Create)
	write.PUT("/dentists/:id", h.Update)
	write.DELETE("/dentists/:id", h.Delete)
}

func (h *Handler) Create(c echo.Context) error {
	var d Dentist
	if err := c.Bind(&d); err != nil {
		return apperr.Validation("invalid request body")
	}
	if err := h.svc.Create(c.Request().Context(), &d); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid dentist id")
	}
	d, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c)
	active, err := activeFilter(c)
	if err != nil {
		return err
	}
	items, total, err := h.svc.List(c.Request().Context(),
		c.QueryParam("q"), c.QueryParam("specialty"), active, pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg))
}

// activeFilter reads the optional active query param; lists default to
// active rows only.
func activeFilter(c echo.Context) (bool, error) {
	raw := c.QueryParam("active")
	if raw == "" {
		return true, nil
	}
	active, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Validation("active must be a boolean")
	}
	return active, nil
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid dentist id")
	}
	var d Dentist
	if err := c.Bind(&d); err != nil {
		return apperr.Validation("invalid request body")
	}
	updated, err := h.svc.Update(c.Request().Context(), id, &d)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.Validation("invalid dentist id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
