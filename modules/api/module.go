// Package api is the driving adapter that exposes the catalog and order
// services over HTTP. It talks to the core modules only through their ports.
package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/order-management/modules/cache"
	"github.com/example/order-management/modules/catalog"
	"github.com/example/order-management/modules/order"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module is the HTTP presentation layer.
type Module struct {
	app         *fiber.App
	catalogPort catalog.CatalogPort
	orderPort   order.OrderPort
	cache       *cache.Cache
	port        int
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.DependentModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module listening on the given port.
func NewModule(port int) *Module {
	return &Module{port: port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *Module) Dependencies() []string {
	return []string{"catalog", "order"}
}

// SetDependencyServiceContainer receives service containers from
// dependencies, one call per dependency declared in Dependencies().
func (m *Module) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalogPort = catalog.NewCatalogAdapter(container)
	case "order":
		m.orderPort = order.NewOrderAdapter(container)
	}
}

// SetCache wires the cache so its statistics can be served. Optional.
func (m *Module) SetCache(c *cache.Cache) {
	m.cache = c
}

// Start initializes the Fiber HTTP server.
func (m *Module) Start(_ context.Context) error {
	if m.catalogPort == nil {
		return fmt.Errorf("catalogPort dependency not set")
	}
	if m.orderPort == nil {
		return fmt.Errorf("orderPort dependency not set")
	}

	m.app = fiber.New(fiber.Config{
		AppName:               "Order Management",
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	// Server availability is verified via Health().
	go func() {
		addr := fmt.Sprintf(":%d", m.port)
		if err := m.app.Listen(addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// fiberErrorHandler handles errors escaping the route handlers.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
