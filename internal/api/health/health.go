package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kevinmichaelchen/repo-lens/internal/api/web"
)

const Banner = "GitHub Architecture Analyzer Backend is running!"

type GetResponse struct {
	Status string `json:"status"`
}

func Configure(e *echo.Echo, l *zap.Logger) {
	e.GET("/", web.Wrap(Index, l))
	e.GET("/health", web.Wrap(Get, l))
}

// Index handles GET /
func Index(c web.Context) error {
	return c.String(http.StatusOK, Banner)
}

// Get handles GET /health
func Get(c web.Context) error {
	return c.OK(GetResponse{Status: "ok"})
}
