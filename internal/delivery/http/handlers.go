package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/domain"
	"github.com/smartscreen/backend/internal/service"
	"github.com/smartscreen/backend/pkg/geo"
)

// HealthChecker reports storage connectivity
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler contains all HTTP handlers
type Handler struct {
	composer  *service.ContentComposer
	gateway   *service.ExternalDataGateway
	locations *service.LocationResolver
	routines  domain.RoutineStore
	health    HealthChecker
	logger    *logrus.Entry
}

// NewHandler creates a new handler
func NewHandler(
	composer *service.ContentComposer,
	gateway *service.ExternalDataGateway,
	locations *service.LocationResolver,
	routines domain.RoutineStore,
	health HealthChecker,
) *Handler {
	return &Handler{
		composer:  composer,
		gateway:   gateway,
		locations: locations,
		routines:  routines,
		health:    health,
		logger:    logrus.WithField("component", "http"),
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	database := "ok"
	if err := h.health.Health(c.UserContext()); err != nil {
		h.logger.WithError(err).Warn("Health check failed")
		database = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":   "ok",
		"service":  "screensaver-backend",
		"version":  "1.0.0",
		"database": database,
	})
}

// GetContent returns the composed screensaver content for now
func (h *Handler) GetContent(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return c.JSON(h.composer.Compose(ctx, h.composer.Now(ctx)))
}

// GetRealtime returns content for clients that render time and date themselves
func (h *Handler) GetRealtime(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return c.JSON(h.composer.Realtime(ctx, h.composer.Now(ctx)))
}

// GetWeather returns current weather, fallback or empty payload
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	return c.JSON(h.gateway.Weather(c.UserContext()))
}

// GetQuote returns a live or static quote
func (h *Handler) GetQuote(c *fiber.Ctx) error {
	return c.JSON(h.gateway.Quote(c.UserContext()))
}

// GetTraffic returns the traffic estimate for now
func (h *Handler) GetTraffic(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return c.JSON(h.gateway.Traffic(ctx, h.composer.Now(ctx)))
}

// GetRoutines lists enabled routines, highest priority first
func (h *Handler) GetRoutines(c *fiber.Ctx) error {
	routines, err := h.routines.FindEnabledOrderedByPriorityDesc(c.UserContext())
	if err != nil {
		h.logger.WithError(err).Error("Failed to load routines")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to load routines")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    routines,
		"count":   len(routines),
	})
}

// GetLocation returns the current location, resolving it if needed
func (h *Handler) GetLocation(c *fiber.Ctx) error {
	return c.JSON(h.locations.Get(c.UserContext()))
}

// GetLocationStatus summarises the resolver state
func (h *Handler) GetLocationStatus(c *fiber.Ctx) error {
	return c.JSON(h.locations.Status())
}

// BrowserLocationRequest is the body of POST /location/browser
type BrowserLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Region    string   `json:"region"`
	Country   string   `json:"country"`
}

// SetBrowserLocation stores coordinates reported by the browser
func (h *Handler) SetBrowserLocation(c *fiber.Ctx) error {
	var req BrowserLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return fiber.NewError(fiber.StatusBadRequest, "latitude and longitude are required")
	}
	if !geo.ValidCoordinates(*req.Latitude, *req.Longitude) {
		return fiber.NewError(fiber.StatusBadRequest, "latitude or longitude out of range")
	}

	loc := h.locations.SetBrowserLocation(c.UserContext(), *req.Latitude, *req.Longitude, req.City, req.Region, req.Country)

	return c.JSON(fiber.Map{
		"success":  !loc.IsEmpty(),
		"location": loc,
	})
}

// ClearBrowserLocation forgets the stored location and re-derives it from the IP
func (h *Handler) ClearBrowserLocation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	h.locations.Clear(ctx)

	return c.JSON(fiber.Map{
		"success":  true,
		"location": h.locations.Current(),
	})
}

// ErrorHandler renders errors as {"error": true, "message": ...}
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
