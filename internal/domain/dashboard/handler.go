package dashboard

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/stats", h.GetStats)
	api.GET("/dashboard/recent-appointments", h.GetRecentAppointments)
	api.GET("/dashboard/monthly", h.GetMonthly)
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetRecentAppointments(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := h.svc.RecentAppointments(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetMonthly(c echo.Context) error {
	year, err := strconv.Atoi(c.QueryParam("year"))
	if err != nil {
		return apperr.Validation("year is required")
	}
	month, err := strconv.Atoi(c.QueryParam("month"))
	if err != nil {
		return apperr.Validation("month is required")
	}
	counts, err := h.svc.MonthlyCounts(c.Request().Context(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, counts)
}
