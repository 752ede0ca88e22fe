package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/order-management/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module provides catalog services backed by the shared relational store.
type Module struct {
	db       *gorm.DB
	repo     *Repository
	service  *Service
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates a new catalog module on top of the shared store handle.
func NewModule(db *gorm.DB) *Module {
	repo := NewRepository(db)
	return &Module{
		db:      db,
		repo:    repo,
		service: NewService(repo, nil),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "catalog"
}

// SetEventBus receives the event bus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ProductCreatedV1.ToBase(),
	}
}

// RegisterServices registers the catalog request-reply services.
// The framework prefixes the names, so "create" becomes
// "services.catalog.create" on the wire.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.createProduct,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getProduct,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listProducts,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	log.Printf("[catalog] Registered services: services.catalog.{create,get,list}")
	return nil
}

// RegisterEventConsumers subscribes to order placement so cached product
// reads never serve stock values from before the last committed order.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderPlacedV1, m.handleOrderPlaced, m); err != nil {
		return fmt.Errorf("failed to register OrderPlaced consumer: %w", err)
	}
	return nil
}

func (m *Module) handleOrderPlaced(ctx context.Context, event events.OrderPlacedEvent, _ *mono.Msg) error {
	ids := make([]uint, 0, len(event.Lines))
	for _, line := range event.Lines {
		ids = append(ids, line.ProductID)
	}
	m.service.InvalidateProducts(ctx, ids...)
	return nil
}

// Start verifies the store handle is usable.
func (m *Module) Start(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	log.Println("[catalog] Module started")
	return nil
}

// Stop stops the module. The shared store handle is closed by main.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[catalog] Module stopped")
	return nil
}

// Health performs a health check on the catalog module.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
		},
	}
}

// SetCache installs the cache layer on the catalog service.
func (m *Module) SetCache(cache CacheService) {
	m.service.SetCache(cache)
}

// GetRepository returns the product repository. The order transaction engine
// uses it, transaction-scoped, for stock reads and decrements.
func (m *Module) GetRepository() *Repository {
	return m.repo
}
