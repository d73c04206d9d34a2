package web

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Context wraps echo.Context with a request-scoped logger.
type Context struct {
	echo.Context
	L *zap.Logger
}

type HandlerFunc func(ctx Context) error

// Wrap adapts a HandlerFunc to echo, tagging its logger with the request ID.
func Wrap(h HandlerFunc, l *zap.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)

		return h(Context{
			Context: c,
			L:       l.With(zap.String("request_id", rid)),
		})
	}
}

func (c Context) Error(status int, message string) error {
	return c.JSON(status, map[string]string{
		"error": message,
	})
}

func (c Context) BadRequest(message string) error {
	return c.Error(http.StatusBadRequest, message)
}

func (c Context) OK(data any) error {
	return c.JSON(http.StatusOK, data)
}
