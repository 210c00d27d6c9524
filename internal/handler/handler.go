package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/corazzon/st-naversearch/internal/config"
	"github.com/corazzon/st-naversearch/pkg/cache"
	"github.com/corazzon/st-naversearch/pkg/insight"
	"github.com/corazzon/st-naversearch/pkg/logger"
	"github.com/corazzon/st-naversearch/pkg/naver"
)

const credentialHint = "NAVER_CLIENT_ID와 NAVER_CLIENT_SECRET를 .env 파일 또는 환경 변수로 설정하세요."

// Handler exposes the report service over HTTP.
type Handler struct {
	reports insight.ReportService
	results *cache.Cache
	creds   func() config.Credentials
	started time.Time
	log     *logger.Logger
}

func New(reports insight.ReportService, results *cache.Cache, creds func() config.Credentials) *Handler {
	return &Handler{
		reports: reports,
		results: results,
		creds:   creds,
		started: time.Now(),
		log:     logger.GetLogger().WithField("component", "handler"),
	}
}

// Register mounts all routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Get("/trend", h.Trend)
	api.Get("/shopping", h.Shopping)
	api.Get("/blog", h.Blog)
	api.Get("/cafe", h.Cafe)
	api.Get("/news", h.News)
	api.Get("/insight", h.Insight)
	api.Get("/export/:source", h.ExportCSV)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":        "ok",
		"uptime":        time.Since(h.started).Round(time.Second).String(),
		"cache_entries": h.results.Len(),
		"credentials":   h.creds().Configured(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

// respondError maps pipeline errors onto HTTP statuses: missing
// credentials are a 503 with a setup hint, upstream API failures a
// 502, anything else a 500.
func (h *Handler) respondError(c *fiber.Ctx, err error) error {
	if errors.Is(err, naver.ErrNoCredentials) {
		h.log.Warn("Request rejected, credentials not configured")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
			"hint":  credentialHint,
		})
	}

	status := fiber.StatusInternalServerError
	var statusErr *naver.StatusError
	var decodeErr *naver.DecodeError
	if errors.As(err, &statusErr) || errors.As(err, &decodeErr) {
		status = fiber.StatusBadGateway
	}

	h.log.WithError(err).Warn("Request failed")
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
