package analyze

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/kevinmichaelchen/repo-lens/internal/api/web"
	"github.com/kevinmichaelchen/repo-lens/internal/models"
)

const missingInputMessage = "Both owner and repo are required"

// Runner analyzes a single repository.
type Runner interface {
	Run(ctx context.Context, ref models.RepositoryRef) (*models.AnalysisResult, error)
}

type Request struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// Response keeps the field names the web frontend reads. Status is "ok" or
// "degraded"; a degraded response still carries renderable text.
type Response struct {
	Success       bool     `json:"success"`
	Owner         string   `json:"owner"`
	Repo          string   `json:"repo"`
	Analysis      string   `json:"analysis"`
	ServicesArray []string `json:"services_array"`
	Status        string   `json:"status"`
}

func NewResponse(res *models.AnalysisResult) Response {
	return Response{
		Success:       true,
		Owner:         res.Repo.Owner,
		Repo:          res.Repo.Name,
		Analysis:      res.Description,
		ServicesArray: res.Services,
		Status:        res.Status.String(),
	}
}

// ErrorResponse is sent when no result could be produced at all.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status string `json:"status"`
}

// Configure registers POST /analyze. Each analysis is cut off after timeout.
func Configure(e *echo.Echo, l *zap.Logger, runner Runner, timeout time.Duration) {
	h := &handler{runner: runner, timeout: timeout}
	e.POST("/analyze", web.Wrap(h.Analyze, l))
}

type handler struct {
	runner  Runner
	timeout time.Duration
}

// Analyze handles POST /analyze
func (h *handler) Analyze(c web.Context) error {
	var req Request
	if err := c.Bind(&req); err != nil {
		return c.BadRequest(missingInputMessage)
	}

	ref := models.RepositoryRef{Owner: req.Owner, Name: req.Repo}
	if err := ref.Validate(); err != nil {
		return c.BadRequest(missingInputMessage)
	}

	c.L.Info("analyzing repository", zap.String("repo", ref.FullName()))

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	res, err := h.runner.Run(ctx, ref)
	if errors.Is(err, models.ErrMissingInput) {
		return c.BadRequest(missingInputMessage)
	}
	if err != nil {
		c.L.Error("analysis failed", zap.String("repo", ref.FullName()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:  err.Error(),
			Status: models.StatusFailed.String(),
		})
	}

	return c.OK(NewResponse(res))
}
