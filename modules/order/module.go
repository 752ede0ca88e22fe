package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/order-management/events"
	"github.com/example/order-management/modules/catalog"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/gorm"
)

// Module provides order placement and lookup services (core domain).
type Module struct {
	repo     *Repository
	engine   *Engine
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)

// NewModule creates a new order module. The product repository comes from
// the catalog module so stock reads and decrements run inside the same
// transaction as the order insert.
func NewModule(db *gorm.DB, products *catalog.Repository) *Module {
	repo := NewRepository(db)
	return &Module{
		repo:   repo,
		engine: NewEngine(db, products, repo),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "order"
}

// SetEventBus receives the event bus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.OrderPlacedV1.ToBase(),
	}
}

// RegisterServices registers the order request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "place", json.Unmarshal, json.Marshal, m.placeOrder,
	); err != nil {
		return fmt.Errorf("failed to register place service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.getOrder,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.listOrders,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}

	log.Printf("[order] Registered services: services.order.{place,get,list}")
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	if m.eventBus == nil {
		log.Println("[order] Warning: eventBus not set, events will not be published")
	}
	log.Println("[order] Module started")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[order] Module stopped")
	return nil
}
