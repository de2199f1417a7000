package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/smartscreen/backend/internal/app"
	"github.com/smartscreen/backend/internal/config"
	"github.com/smartscreen/backend/internal/delivery/http"
	"github.com/smartscreen/backend/internal/scheduler"
)

func main() {
	// Load environment variables
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	cfg.SetupLogging()

	// Dependency Injection
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	deps, err := app.New(ctx, cfg)
	if err != nil {
		cancel()
		logrus.WithError(err).Fatal("Failed to initialize application")
	}
	defer deps.Close()

	deps.Locations.Initialize(ctx)
	cancel()

	// Background jobs
	jobs := scheduler.New(15 * time.Second)
	if err := jobs.ScheduleLocationRefresh(cfg.LocationRefresh, deps.Locations); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule location refresh")
	}
	jobs.Start()

	// Fiber App
	fiberApp := fiber.New(fiber.Config{
		AppName:      "Smart Screensaver API v1.0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	fiberApp.Use(recover.New())
	fiberApp.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	fiberApp.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	handler := http.NewHandler(deps.Composer, deps.Gateway, deps.Locations, deps.Routines, deps.Repo)
	http.SetupRoutes(fiberApp, handler)

	// Graceful shutdown
	go func() {
		logrus.WithField("port", cfg.Port).Info("Server starting")
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			logrus.WithError(err).Fatal("Server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer stopCancel()
	jobs.Stop(stopCtx)

	if err := fiberApp.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		logrus.WithError(err).Warn("Server forced to shutdown")
	}
	logrus.Info("Server exited gracefully")
}
