package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/smartscreen/backend/internal/metrics"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, handler *Handler) {
	// Health check
	app.Get("/health", handler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// API v1 routes
	api := app.Group("/api/v1/screensaver")
	{
		// Content endpoints
		api.Get("/content", handler.GetContent)
		api.Get("/realtime", handler.GetRealtime)
		api.Get("/routines", handler.GetRoutines)

		// Individual data domains
		api.Get("/weather", handler.GetWeather)
		api.Get("/quote", handler.GetQuote)
		api.Get("/traffic", handler.GetTraffic)

		// Location
		api.Get("/location", handler.GetLocation)
		api.Get("/location/status", handler.GetLocationStatus)
		api.Post("/location/browser", handler.SetBrowserLocation)
		api.Delete("/location/browser", handler.ClearBrowserLocation)
	}
}
