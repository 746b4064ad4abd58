package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/KuzenkovAG/restaurant-menu/cmd/api/container"
	"github.com/KuzenkovAG/restaurant-menu/cmd/api/routes"
	"github.com/KuzenkovAG/restaurant-menu/common/bootstrap"
	"github.com/KuzenkovAG/restaurant-menu/common/db"
	"github.com/KuzenkovAG/restaurant-menu/common/server"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

//go:embed schema.sql
var schemaSQL string

func main() {
	ctx := context.Background()

	// Optional .env for local development
	_ = godotenv.Load()

	// Bootstrap common components (config, logger, DB, redis, cache)
	components, err := bootstrap.Setup(ctx, "restaurant-menu",
		bootstrap.WithDBInitHook(applySchema),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap service: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	// Initialize Echo server
	e := setupEcho()
	setupMiddleware(e)
	setupHealthCheck(e, serviceContainer)
	registerRoutes(e, serviceContainer)

	// Start the periodic spreadsheet reconciliation
	if serviceContainer.Scheduler != nil {
		if err := serviceContainer.Scheduler.Start(); err != nil {
			components.Logger.Error("failed to start sync scheduler", "error", err)
			os.Exit(1)
		}
		defer serviceContainer.Scheduler.Stop()
	}

	// Start server with graceful shutdown
	srv := server.New("restaurant-menu-api", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, c *container.Container) {
	e.GET("/health", func(ec echo.Context) error {
		if err := c.Components.Health(ec.Request().Context()); err != nil {
			return ec.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return ec.JSON(200, map[string]string{
			"status":  "ok",
			"service": "restaurant-menu",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, c *container.Container) {
	routes.RegisterMenuRoutes(e, c)
	routes.RegisterSubMenuRoutes(e, c)
	routes.RegisterDishRoutes(e, c)
}

// applySchema creates the tables on startup if they don't exist yet
func applySchema(database *db.DB) error {
	if _, err := database.Exec(context.Background(), schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
