package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mathieu-neron/topictube/topictube-go/internal/handler"
	"github.com/mathieu-neron/topictube/topictube-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Ingest  *handler.IngestHandler
	Video   *handler.VideoHandler
	Channel *handler.ChannelHandler
	Health  *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health and metrics sit outside the rate-limited API group
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	ingestLimit := middleware.NewIngestRateLimiter()
	readLimit := middleware.NewReadRateLimiter()

	// API routes
	api := app.Group("/api")

	// Video routes
	api.Post("/videos/ingest", ingestLimit.Handler(), h.Ingest.Ingest)
	api.Get("/videos/groups", readLimit.Handler(), h.Video.GetGroups)
	api.Get("/videos", readLimit.Handler(), h.Video.GetByVideoID)

	// Channel routes
	api.Get("/channels/:channelId", readLimit.Handler(), h.Channel.GetByChannelID)
}
