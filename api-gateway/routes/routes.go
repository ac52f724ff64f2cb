package routes

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pandamarket/api/api-gateway/config"
	"github.com/pandamarket/api/api-gateway/health"
	"github.com/pandamarket/api/api-gateway/middleware"
	"github.com/pandamarket/api/api-gateway/proxy"
)

// RouteDefinition maps a path prefix onto a backend service
type RouteDefinition struct {
	Prefix      string
	ServiceName string
	Description string
	RequireAuth bool
}

// Routes holds all route definitions. Reads stay public; the backend
// applies its own per-endpoint authorization on top.
var Routes = []RouteDefinition{
	{
		Prefix:      "/auth",
		ServiceName: "api",
		Description: "Registration and login",
	},
	{
		Prefix:      "/products",
		ServiceName: "api",
		Description: "Product listings, likes and comments",
	},
	{
		Prefix:      "/articles",
		ServiceName: "api",
		Description: "Free-board articles, likes and comments",
	},
	{
		Prefix:      "/comments",
		ServiceName: "api",
		Description: "Comment updates and deletion",
		RequireAuth: true,
	},
	{
		Prefix:      "/users",
		ServiceName: "api",
		Description: "Profile and caller-scoped listings",
		RequireAuth: true,
	},
	{
		Prefix:      "/images",
		ServiceName: "api",
		Description: "Image upload",
		RequireAuth: true,
	},
	{
		Prefix:      "/uploads",
		ServiceName: "api",
		Description: "Uploaded image files",
	},
}

// SetupRoutes configures every route in the gateway
func SetupRoutes(app *fiber.App, cfg *config.GatewayConfig, cbManager *middleware.CircuitBreakerManager) {
	reverseProxy := proxy.NewReverseProxy(cfg)
	healthChecker := health.NewHealthChecker(cfg)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(healthChecker.QuickCheck())
	})

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})

	app.Get("/health/ready", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		status := healthChecker.CheckAll(ctx)
		statusCode := fiber.StatusOK
		if status.Status == "unhealthy" {
			statusCode = fiber.StatusServiceUnavailable
		}
		return c.Status(statusCode).JSON(status)
	})

	app.Get("/health/services", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		return c.JSON(healthChecker.CheckAll(ctx))
	})

	app.Get("/health/circuits", func(c *fiber.Ctx) error {
		return c.JSON(cbManager.AllStats())
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Pandamarket API Gateway",
			"version": "1.0.0",
			"routes":  Routes,
		})
	})

	for _, route := range Routes {
		registerServiceRoutes(app, route, reverseProxy)
	}
}

func registerServiceRoutes(app *fiber.App, route RouteDefinition, reverseProxy *proxy.ReverseProxy) {
	handler := func(c *fiber.Ctx) error {
		return reverseProxy.ProxyRequest(c, route.ServiceName)
	}

	var middlewares []fiber.Handler
	if route.RequireAuth {
		middlewares = append(middlewares, middleware.AuthMiddleware())
	} else {
		// Decorated reads need the identity forwarded when present
		middlewares = append(middlewares, middleware.OptionalAuthMiddleware())
	}

	group := app.Group(route.Prefix, middlewares...)
	group.All("/*", handler)
	app.All(route.Prefix, append(middlewares, handler)...)
}
