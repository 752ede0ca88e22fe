// Package notification is a driven adapter that reacts to domain events:
// it records placed orders and warns when a product's remaining stock falls
// below a configurable threshold.
package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/order-management/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// NotificationLog represents a logged notification.
type NotificationLog struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Module subscribes to catalog and order events.
type Module struct {
	lowStockThreshold int
	notifications     []NotificationLog
	mu                sync.RWMutex
}

var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates a new notification module. lowStockThreshold is the
// stock level at or below which a warning is logged after an order commits.
func NewModule(lowStockThreshold int) *Module {
	return &Module{
		lowStockThreshold: lowStockThreshold,
		notifications:     make([]NotificationLog, 0),
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to the domain events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.OrderPlacedV1, m.handleOrderPlaced, m); err != nil {
		return fmt.Errorf("failed to register OrderPlaced consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.ProductCreatedV1, m.handleProductCreated, m); err != nil {
		return fmt.Errorf("failed to register ProductCreated consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: OrderPlaced, ProductCreated")
	return nil
}

func (m *Module) handleOrderPlaced(_ context.Context, event events.OrderPlacedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Order %d placed, total %.2f", event.OrderID, event.TotalPrice)
	m.logNotification(event.EventID, "order_placed",
		fmt.Sprintf("Order %d placed with %d line(s), total %.2f", event.OrderID, len(event.Lines), event.TotalPrice))

	for _, line := range event.Lines {
		if line.RemainingStock <= m.lowStockThreshold {
			log.Printf("[notification] Low stock: product %d down to %d", line.ProductID, line.RemainingStock)
			m.logNotification(event.EventID, "low_stock",
				fmt.Sprintf("Product %d stock is down to %d", line.ProductID, line.RemainingStock))
		}
	}
	return nil
}

func (m *Module) handleProductCreated(_ context.Context, event events.ProductCreatedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Product created: %d - %s (stock %d)", event.ProductID, event.Name, event.Stock)
	m.logNotification(event.EventID, "product_created",
		fmt.Sprintf("Product '%s' added with stock %d", event.Name, event.Stock))
	return nil
}

func (m *Module) logNotification(id, notificationType, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = append(m.notifications, NotificationLog{
		ID:        id,
		Type:      notificationType,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// GetNotifications returns a copy of the recorded notifications.
func (m *Module) GetNotifications() []NotificationLog {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]NotificationLog, len(m.notifications))
	copy(result, m.notifications)
	return result
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[notification] Module started - listening for catalog and order events")
	return nil
}

// Stop stops the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}
