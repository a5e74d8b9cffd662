package user

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/odontosys/odontosys/internal/platform/apperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public auth endpoints; these are the only
// routes that do not require a bearer token.
func (h *Handler) RegisterRoutes(public *echo.Group) {
	public.POST("/auth/register", h.Register)
	public.POST("/auth/login", h.Login)
}

func (h *Handler) Register(c echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	result, err := h.svc.Register(c.Request().Context(), body.Name, body.Email, body.Password, body.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *Handler) Login(c echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return apperr.Validation("invalid request body")
	}

	result, err := h.svc.Login(c.Request().Context(), body.Email, body.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
