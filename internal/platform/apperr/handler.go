package apperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Response is the error body returned by every failing endpoint.
type Response struct {
	Message string      `json:"message"`
	Error   interface{} `json:"error,omitempty"`
}

// HTTPErrorHandler returns an echo error handler that maps taxonomy errors
// and echo HTTP errors to the {message, error} shape. Anything unrecognized
// becomes a 500 without leaking the internal error to the client.
func HTTPErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		resp := Response{Message: "internal server error"}

		var appErr *Error
		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status
			resp.Message = appErr.Message
			if appErr.Err != nil {
				resp.Error = appErr.Err.Error()
			}
		case errors.As(err, &httpErr):
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				resp.Message = msg
			} else {
				resp.Message = http.StatusText(httpErr.Code)
			}
		default:
			logger.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, resp)
	}
}
