package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/channelscope/channelscope-go/internal/handler"
	"github.com/channelscope/channelscope-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Analyze  *handler.AnalyzeHandler
	Channel  *handler.ChannelHandler
	Coaching *handler.CoachingHandler
	Profile  *handler.ProfileHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Health checks (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	// Prometheus metrics
	app.Get("/metrics", handler.MetricsHandler())

	// API info
	app.Get("/api", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "ChannelScope API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /v1/analyze",
				"POST /v1/analyze/strategic",
				"GET /v1/channels/:channelId/analysis",
				"POST /v1/profile",
				"GET /v1/profile/:channelId",
				"POST /v1/coaching/start",
				"POST /v1/coaching/continue",
				"GET /v1/coaching/sessions/:sessionId",
				"GET /v1/coaching/channels/:channelId/sessions",
				"POST /v1/coach/setup",
				"POST /v1/coach/chat",
				"GET /v1/stats",
			},
		})
	})

	// Per-route rate limiters. Analysis and coaching can trigger model calls,
	// so they get long windows; reads are limited only against abuse.
	analyzeRL := middleware.NewAnalyzeRateLimiter()
	coachingRL := middleware.NewCoachingRateLimiter()
	readRL := middleware.NewReadRateLimiter()
	profileRL := middleware.NewProfileRateLimiter()

	// API routes
	v1 := app.Group("/v1")

	// Analysis routes
	v1.Post("/analyze", h.Analyze.Analyze, analyzeRL.Handler())
	v1.Post("/analyze/strategic", h.Analyze.AnalyzeStrategic, analyzeRL.Handler())
	v1.Get("/channels/:channelId/analysis", h.Channel.GetAnalysis, readRL.Handler())

	// Profile routes
	v1.Post("/profile", h.Profile.Upsert, profileRL.Handler())
	v1.Get("/profile/:channelId", h.Profile.Get, profileRL.Handler())

	// Coaching routes
	v1.Post("/coaching/start", h.Coaching.Start, coachingRL.Handler())
	v1.Post("/coaching/continue", h.Coaching.Continue, coachingRL.Handler())
	v1.Get("/coaching/sessions/:sessionId", h.Coaching.GetSession, readRL.Handler())
	v1.Get("/coaching/channels/:channelId/sessions", h.Coaching.ListSessions, readRL.Handler())

	// Conversational coach routes
	v1.Post("/coach/setup", h.Coaching.ChatSetup, coachingRL.Handler())
	v1.Post("/coach/chat", h.Coaching.Chat, coachingRL.Handler())

	// Stats routes
	v1.Get("/stats", h.Stats.GetStats, readRL.Handler())
}
